package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/jobdesk/dashboard-system/internal/api"
	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
	"github.com/jobdesk/dashboard-system/internal/core/service"
	"github.com/jobdesk/dashboard-system/internal/gateway"
	"github.com/jobdesk/dashboard-system/internal/gatewayserver"
	"github.com/jobdesk/dashboard-system/internal/infrastructure/db/memory"
	"github.com/jobdesk/dashboard-system/internal/infrastructure/session"
)

// The full dashboard wired against an in-process reference gateway, covering
// the lifecycle a support user drives: register, create a job for a
// salesperson, move it through the queue, complete it with a hand-off.

type testEnv struct {
	srv *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zerolog.Nop()

	// Remote gateway backed by in-memory repositories.
	gws := gatewayserver.NewServer(memory.NewUserRepository(), memory.NewJobRepository(), log)
	ge := echo.New()
	gws.Routes(ge)
	remote := httptest.NewServer(ge)
	t.Cleanup(remote.Close)

	client, err := gateway.NewClient(gateway.Config{BaseURL: remote.URL}, log)
	if err != nil {
		t.Fatalf("gateway client: %v", err)
	}

	sessions := session.NewMemoryStore()
	tracker := session.NewTracker()
	store := service.NewSnapshotStore()

	syncService := service.NewSyncService(client, store, tracker, time.Second, log)
	if err := syncService.Load(context.Background()); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	jobService := service.NewJobService(client, store, log)
	authService := service.NewAuthService(client, sessions, tracker, "integration-secret", time.Hour, log)
	queueService := service.NewQueueService(syncService)
	handoffService := service.NewHandoffService(syncService, jobService, log)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Jobs:      jobService,
		Queue:     queueService,
		Handoff:   handoffService,
		Sync:      syncService,
		Sessions:  sessions,
		JWTSecret: "integration-secret",
		Metrics:   prometheus.NewRegistry(),
		Log:       log,
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv}
}

func (env *testEnv) do(t *testing.T, method, path, token, body string, out any) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, env.srv.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode
}

type authPayload struct {
	Token        string             `json:"token"`
	User         domain.User        `json:"user"`
	Capabilities ports.Capabilities `json:"capabilities"`
	Theme        string             `json:"theme"`
}

type queuePayload struct {
	Queue        ports.QueueView    `json:"queue"`
	SalesUsers   []domain.User      `json:"salesUsers"`
	Capabilities ports.Capabilities `json:"capabilities"`
}

type statsPayload struct {
	Team []ports.PersonStats `json:"team"`
}

func (env *testEnv) register(t *testing.T, firstName, email, role string) authPayload {
	t.Helper()
	var out authPayload
	body := `{"firstName":"` + firstName + `","lastName":"Tester","email":"` + email + `","password":"hunter2","role":"` + role + `"}`
	if code := env.do(t, http.MethodPost, "/auth/register", "", body, &out); code != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, code)
	}
	return out
}

func TestDashboardLifecycle(t *testing.T) {
	env := newTestEnv(t)

	sales := env.register(t, "Ana", "ana@corp.test", domain.RoleSales)
	support := env.register(t, "Eva", "eva@corp.test", domain.RoleSupport)

	if sales.Theme != session.DefaultTheme {
		t.Fatalf("new user theme = %q, want %q", sales.Theme, session.DefaultTheme)
	}
	if sales.Capabilities.CanDeleteJob || !support.Capabilities.CanDeleteJob {
		t.Fatalf("capabilities wrong: sales=%+v support=%+v", sales.Capabilities, support.Capabilities)
	}

	// Support creates a job owned by the salesperson, due tomorrow.
	due := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	var job domain.Job
	code := env.do(t, http.MethodPost, "/jobs", support.Token,
		`{"title":"Contract renewal","description":"Renew the Acme contract","dueDate":"`+due+`","salespersonId":"`+sales.User.ID+`"}`, &job)
	if code != http.StatusCreated {
		t.Fatalf("create job: status %d", code)
	}
	if job.Status != domain.StatusQueued || job.SalespersonID != sales.User.ID {
		t.Fatalf("created job = %+v", job)
	}

	// The job shows up exactly once, in the queued bucket.
	var queue queuePayload
	if code := env.do(t, http.MethodGet, "/queue", support.Token, "", &queue); code != http.StatusOK {
		t.Fatalf("queue: status %d", code)
	}
	if len(queue.Queue.Queued) != 1 || queue.Queue.Queued[0].ID != job.ID {
		t.Fatalf("queued bucket = %+v", queue.Queue)
	}
	if n := len(queue.Queue.Overdue) + len(queue.Queue.InProgress) + len(queue.Queue.Completed); n != 0 {
		t.Fatalf("job leaked into other buckets: %+v", queue.Queue)
	}
	if len(queue.SalesUsers) != 1 || queue.SalesUsers[0].ID != sales.User.ID {
		t.Fatalf("salesUsers = %+v", queue.SalesUsers)
	}

	// Lifecycle actions are Support-only.
	if code := env.do(t, http.MethodPatch, "/jobs/"+job.ID+"/status", sales.Token, `{"status":"in_progress"}`, nil); code != http.StatusForbidden {
		t.Fatalf("sales status update: status %d, want 403", code)
	}

	var updated domain.Job
	if code := env.do(t, http.MethodPatch, "/jobs/"+job.ID+"/status", support.Token, `{"status":"in_progress"}`, &updated); code != http.StatusOK {
		t.Fatalf("status update: status %d", code)
	}
	if updated.Status != domain.StatusInProgress {
		t.Fatalf("updated job = %+v", updated)
	}

	// Completion hand-off composes the mailto and completes the job.
	var handoff ports.HandoffResult
	if code := env.do(t, http.MethodPost, "/jobs/"+job.ID+"/handoff", support.Token,
		`{"notes":"All wrapped up.","fileNames":["contract.pdf"]}`, &handoff); code != http.StatusOK {
		t.Fatalf("handoff: status %d", code)
	}
	if !strings.HasPrefix(handoff.MailtoURL, "mailto:ana@corp.test?subject=") {
		t.Fatalf("mailto = %s", handoff.MailtoURL)
	}
	if handoff.Job == nil || handoff.Job.Status != domain.StatusCompleted || handoff.Job.CompletedAt == nil {
		t.Fatalf("handoff job = %+v", handoff.Job)
	}

	if code := env.do(t, http.MethodGet, "/queue", support.Token, "", &queue); code != http.StatusOK {
		t.Fatalf("queue after completion: status %d", code)
	}
	if len(queue.Queue.Completed) != 1 || queue.Queue.Completed[0].CompletedAt == nil {
		t.Fatalf("completed bucket = %+v", queue.Queue)
	}

	// Stats: support sees the team, sales sees only themselves.
	var stats statsPayload
	if code := env.do(t, http.MethodGet, "/stats", support.Token, "", &stats); code != http.StatusOK {
		t.Fatalf("stats: status %d", code)
	}
	if len(stats.Team) != 1 || stats.Team[0].Person.ID != sales.User.ID || stats.Team[0].Completed != 1 {
		t.Fatalf("team stats = %+v", stats.Team)
	}

	if code := env.do(t, http.MethodGet, "/stats", sales.Token, "", &stats); code != http.StatusOK {
		t.Fatalf("sales stats: status %d", code)
	}
	if len(stats.Team) != 1 || stats.Team[0].Person.ID != sales.User.ID {
		t.Fatalf("sales must see only their own stats: %+v", stats.Team)
	}
}

func TestDashboardAuthAndTheme(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Ana", "ana@corp.test", domain.RoleSales)

	// Wrong password comes back as 401, and the generic gateway message
	// never distinguishes unknown emails from bad passwords.
	var errBody map[string]any
	if code := env.do(t, http.MethodPost, "/auth/login", "", `{"email":"ana@corp.test","password":"wrong"}`, &errBody); code != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d", code)
	}

	var login authPayload
	if code := env.do(t, http.MethodPost, "/auth/login", "", `{"email":"ana@corp.test","password":"hunter2"}`, &login); code != http.StatusOK {
		t.Fatalf("login: status %d", code)
	}
	if login.User.Password != "" {
		t.Fatal("login response must not carry a password")
	}

	// Theme round-trip, surviving logout.
	if code := env.do(t, http.MethodPut, "/session/theme", login.Token, `{"theme":"sky"}`, nil); code != http.StatusOK {
		t.Fatalf("put theme: status %d", code)
	}
	if code := env.do(t, http.MethodPost, "/auth/logout", login.Token, "", nil); code != http.StatusNoContent {
		t.Fatalf("logout: status %d", code)
	}

	var relogin authPayload
	if code := env.do(t, http.MethodPost, "/auth/login", "", `{"email":"ana@corp.test","password":"hunter2"}`, &relogin); code != http.StatusOK {
		t.Fatalf("re-login: status %d", code)
	}
	if relogin.Theme != "sky" {
		t.Fatalf("theme after re-login = %q, want sky", relogin.Theme)
	}

	// Protected routes reject missing and garbage tokens.
	if code := env.do(t, http.MethodGet, "/queue", "", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("queue without token: status %d", code)
	}
	if code := env.do(t, http.MethodGet, "/queue", "not-a-token", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("queue with garbage token: status %d", code)
	}
}
