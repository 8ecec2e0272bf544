package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// QueueHandler serves the read-side views: the bucketed queue and the
// per-person statistics. Both are derived from the live snapshot on every
// request.
type QueueHandler struct {
	queue ports.QueueService
	sync  ports.SnapshotReader
}

func NewQueueHandler(queue ports.QueueService, sync ports.SnapshotReader) *QueueHandler {
	return &QueueHandler{queue: queue, sync: sync}
}

// Queue returns the filtered, bucketed job queue.
//
// Query parameters:
//   - search: case-insensitive substring match on title and description
//   - salesperson: owner id, or "all" (default) for no owner filter
func (h *QueueHandler) Queue(c echo.Context) error {
	if err := h.sync.Ready(); err != nil {
		return err
	}

	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view := h.queue.BuildQueueView(ports.QueueFilter{
		Search:        c.QueryParam("search"),
		SalespersonID: c.QueryParam("salesperson"),
		Now:           time.Now(),
	})

	snap := h.sync.Snapshot()
	sales := snap.SalesUsers()
	for i := range sales {
		sales[i] = sales[i].StripPassword()
	}

	return c.JSON(http.StatusOK, queueResponse{
		Queue:        view,
		SalesUsers:   sales,
		Capabilities: h.queue.CapabilitiesFor(role),
	})
}

// Stats returns per-salesperson bucket counts: the viewer's own when the
// viewer is Sales, the whole sales team when the viewer is Support.
func (h *QueueHandler) Stats(c echo.Context) error {
	if err := h.sync.Ready(); err != nil {
		return err
	}

	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	viewer := domain.User{ID: userID, Role: role}
	return c.JSON(http.StatusOK, statsResponse{
		Team: h.queue.BuildTeamStats(viewer, time.Now()),
	})
}
