package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

func TestMemoryStore_ProfileRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := domain.User{ID: "u1", Email: "ana@corp.test", Password: "leaked", Role: domain.RoleSales}
	if err := store.SaveProfile(ctx, user); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, err := store.LoadProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if got.Password != "" {
		t.Fatal("stored profile must never carry a password")
	}
	if got.Email != "ana@corp.test" {
		t.Fatalf("email = %q", got.Email)
	}

	if err := store.ClearProfile(ctx, "u1"); err != nil {
		t.Fatalf("ClearProfile: %v", err)
	}
	if _, err := store.LoadProfile(ctx, "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound after clear, got %v", err)
	}
}

func TestMemoryStore_Theme(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// Unset theme falls back to the default.
	theme, err := store.LoadTheme(ctx, "u1")
	if err != nil || theme != DefaultTheme {
		t.Fatalf("LoadTheme = %q, %v; want default %q", theme, err, DefaultTheme)
	}

	if err := store.SaveTheme(ctx, "u1", "rose"); err != nil {
		t.Fatalf("SaveTheme: %v", err)
	}
	if theme, _ = store.LoadTheme(ctx, "u1"); theme != "rose" {
		t.Fatalf("theme = %q, want rose", theme)
	}

	var verr *domain.ValidationError
	if err := store.SaveTheme(ctx, "u1", "crimson"); !errors.As(err, &verr) {
		t.Fatalf("unknown theme must be rejected, got %v", err)
	}

	// The theme survives a profile clear.
	_ = store.SaveProfile(ctx, domain.User{ID: "u1"})
	_ = store.ClearProfile(ctx, "u1")
	if theme, _ = store.LoadTheme(ctx, "u1"); theme != "rose" {
		t.Fatalf("theme after logout = %q, want rose", theme)
	}
}

func TestValidTheme(t *testing.T) {
	for _, name := range Themes {
		if !ValidTheme(name) {
			t.Fatalf("ValidTheme(%q) = false", name)
		}
	}
	if ValidTheme("neon") {
		t.Fatal("ValidTheme(neon) = true")
	}
}

func TestTracker_ActiveAndWake(t *testing.T) {
	tr := NewTracker()

	if tr.Active() {
		t.Fatal("fresh tracker must be idle")
	}

	tr.Register("s1")
	if !tr.Active() {
		t.Fatal("tracker must be active after Register")
	}
	select {
	case <-tr.Wake():
	case <-time.After(time.Second):
		t.Fatal("empty-to-active transition must signal the wake channel")
	}

	// A second session while already active must not signal again.
	tr.Register("s2")
	select {
	case <-tr.Wake():
		t.Fatal("wake must fire only on the empty-to-active transition")
	default:
	}

	tr.Unregister("s1")
	if !tr.Active() {
		t.Fatal("tracker must stay active while any session remains")
	}
	tr.Unregister("s2")
	if tr.Active() {
		t.Fatal("tracker must be idle after the last session ends")
	}

	// The next registration signals again.
	tr.Register("s3")
	select {
	case <-tr.Wake():
	case <-time.After(time.Second):
		t.Fatal("re-registration must signal the wake channel")
	}
}

func TestTracker_RegisterIsIdempotent(t *testing.T) {
	tr := NewTracker()
	tr.Register("s1")
	<-tr.Wake()
	tr.Register("s1")
	tr.Unregister("s1")
	if tr.Active() {
		t.Fatal("double registration of one session must still drain to idle")
	}
}
