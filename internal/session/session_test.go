package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeck-client/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestLoginEstablishesSession(t *testing.T) {
	sess := New(NewMemoryStore())

	if sess.IsAuthenticated() {
		t.Fatal("fresh session should be anonymous")
	}
	if err := sess.Login(models.User{ID: "u1", Name: "Alice"}, "tok"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if !sess.IsAuthenticated() {
		t.Error("session not authenticated after login")
	}
	if got := sess.Token(); got != "tok" {
		t.Errorf("Token() = %q, want tok", got)
	}
	if user := sess.CurrentUser(); user == nil || user.ID != "u1" {
		t.Errorf("CurrentUser() = %+v, want u1", user)
	}
}

func TestLogoutClearsSessionAndStore(t *testing.T) {
	store := NewMemoryStore()
	sess := New(store)
	if err := sess.Login(models.User{ID: "u1"}, "tok"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := sess.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("session still authenticated after logout")
	}
	if sess.Token() != "" {
		t.Error("token survived logout")
	}
	state, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if state != nil {
		t.Errorf("persisted state survived logout: %+v", state)
	}
}

func TestHydrateRestoresPersistedSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	token := signedToken(t, time.Now().Add(time.Hour))

	first := New(NewFileStore(path))
	if err := first.Login(models.User{ID: "u1", Name: "Alice", Email: "a@b.c"}, token); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// Fresh session against the same file, as after an application restart
	second := New(NewFileStore(path))
	if err := second.Hydrate(); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if !second.IsAuthenticated() {
		t.Fatal("session not restored from disk")
	}
	if user := second.CurrentUser(); user.Name != "Alice" {
		t.Errorf("restored user = %+v, want Alice", user)
	}
	if second.Token() != token {
		t.Error("restored token differs from persisted one")
	}
}

func TestHydrateDiscardsExpiredToken(t *testing.T) {
	store := NewMemoryStore()
	expired := signedToken(t, time.Now().Add(-time.Hour))
	if err := store.Save(State{User: &models.User{ID: "u1"}, Token: expired}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sess := New(store)
	if err := sess.Hydrate(); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("expired token was restored")
	}
}

func TestHydrateKeepsOpaqueToken(t *testing.T) {
	// The backend may hand out tokens that are not JWTs; expiry cannot be
	// judged client-side, so they are restored as-is.
	store := NewMemoryStore()
	if err := store.Save(State{User: &models.User{ID: "u1"}, Token: "dummy-jwt-token-1"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sess := New(store)
	if err := sess.Hydrate(); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Error("opaque token was not restored")
	}
}

func TestHydrateWithEmptyStoreStaysAnonymous(t *testing.T) {
	sess := New(NewMemoryStore())
	if err := sess.Hydrate(); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("session authenticated with empty store")
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	state, err := store.Load()
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if state != nil {
		t.Errorf("Load of missing file = %+v, want nil", state)
	}
}

func TestFileStoreClearMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	if err := store.Clear(); err != nil {
		t.Errorf("Clear of missing file failed: %v", err)
	}
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	if err := store.Save(State{User: &models.User{ID: "u1"}, Token: "tok"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 0600", perm)
	}
}

func TestCurrentUserReturnsCopy(t *testing.T) {
	sess := New(NewMemoryStore())
	if err := sess.Login(models.User{ID: "u1", Name: "Alice"}, "tok"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	user := sess.CurrentUser()
	user.Name = "Mallory"
	if sess.CurrentUser().Name != "Alice" {
		t.Error("mutating the returned user changed session state")
	}
}
