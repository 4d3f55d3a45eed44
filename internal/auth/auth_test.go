package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/vibe-coding/vibedocs/internal/storage"
)

func newService(t *testing.T, store storage.Store) *Service {
	t.Helper()
	svc, err := New(context.Background(), store)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return svc
}

func TestLogin(t *testing.T) {
	svc := newService(t, storage.NewMemoryStore())

	u, err := svc.Login(context.Background(), "ada@example.com", "anything")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if u.Name != "ada" {
		t.Errorf("Name = %q, want ada", u.Name)
	}
	if u.Avatar != "https://api.dicebear.com/7.x/avataaars/svg?seed=ada%40example.com" {
		t.Errorf("Avatar = %q", u.Avatar)
	}
	if u.Progress != (Progress{CompletedTutorials: 12, SavedSnippets: 24, SearchQueries: 156}) {
		t.Errorf("Progress = %+v", u.Progress)
	}
	if u.Preferences != defaultPreferences() {
		t.Errorf("Preferences = %+v", u.Preferences)
	}

	again, _ := svc.Login(context.Background(), "ADA@example.com", "other")
	if again.ID != u.ID {
		t.Errorf("id must be derived from the email: %q != %q", again.ID, u.ID)
	}
	other, _ := svc.Login(context.Background(), "bob@example.com", "")
	if other.ID == u.ID {
		t.Error("different emails must get different ids")
	}
}

func TestSignup(t *testing.T) {
	svc := newService(t, storage.NewMemoryStore())

	u, err := svc.Signup(context.Background(), "grace@example.com", "pw", "Grace Hopper")
	if err != nil {
		t.Fatalf("Signup() error: %v", err)
	}
	if u.Name != "Grace Hopper" || u.Progress != (Progress{}) {
		t.Errorf("user = %+v", u)
	}

	u, _ = svc.Signup(context.Background(), "linus@example.com", "pw", "  ")
	if u.Name != "linus" {
		t.Errorf("blank name fallback = %q", u.Name)
	}
}

func TestEmptyEmailRejected(t *testing.T) {
	svc := newService(t, storage.NewMemoryStore())
	if _, err := svc.Login(context.Background(), "  ", "x"); !errors.Is(err, ErrEmailRequired) {
		t.Errorf("Login err = %v", err)
	}
	if _, err := svc.Signup(context.Background(), "", "x", "n"); !errors.Is(err, ErrEmailRequired) {
		t.Errorf("Signup err = %v", err)
	}
	if _, ok := svc.Current(); ok {
		t.Error("rejected login must not sign in")
	}
}

func TestPersistenceAndLogout(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	svc := newService(t, store)
	if _, err := svc.Login(ctx, "ada@example.com", ""); err != nil {
		t.Fatal(err)
	}

	restored := newService(t, store)
	u, ok := restored.Current()
	if !ok || u.Email != "ada@example.com" {
		t.Fatalf("restored user = %+v, %v", u, ok)
	}

	if err := restored.Logout(ctx); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if _, ok := restored.Current(); ok {
		t.Error("still signed in after logout")
	}
	if _, err := store.Get(ctx, storage.KeyUser); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("stored user not removed: %v", err)
	}
}

func TestCorruptStoredUser(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Set(context.Background(), storage.KeyUser, []byte("nope"))
	svc := newService(t, store)
	if _, ok := svc.Current(); ok {
		t.Error("corrupt profile must read as signed out")
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, storage.NewMemoryStore())

	if _, err := svc.UpdateProfile(ctx, ProfilePatch{}); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("err = %v, want ErrNotSignedIn", err)
	}

	svc.Login(ctx, "ada@example.com", "")
	name := "Ada Lovelace"
	prefs := Preferences{Theme: "light", Language: "python"}
	u, err := svc.UpdateProfile(ctx, ProfilePatch{Name: &name, Preferences: &prefs})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if u.Name != name || u.Preferences != prefs {
		t.Errorf("user = %+v", u)
	}
	if u.Email != "ada@example.com" || u.Progress.SearchQueries != 156 {
		t.Error("unpatched fields must be kept")
	}
}

func TestRoutes(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, newService(t, storage.NewMemoryStore()))

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
		return w
	}

	if w := do(http.MethodGet, "/api/auth/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("me before login = %d", w.Code)
	}
	if w := do(http.MethodPost, "/api/auth/login", `{"email":""}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty email = %d", w.Code)
	}
	if w := do(http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"x"}`); w.Code != http.StatusOK {
		t.Errorf("login = %d", w.Code)
	}
	w := do(http.MethodPatch, "/api/auth/me", `{"name":"Countess"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"name":"Countess"`) {
		t.Errorf("patch = %d %s", w.Code, w.Body)
	}
	if w := do(http.MethodPost, "/api/auth/logout", ""); w.Code != http.StatusNoContent {
		t.Errorf("logout = %d", w.Code)
	}
	if w := do(http.MethodGet, "/api/auth/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout = %d", w.Code)
	}
}
