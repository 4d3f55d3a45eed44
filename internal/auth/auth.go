// Package auth is the mock sign-in service. Any credentials are accepted and
// the profile is derived from the email address alone.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vibe-coding/vibedocs/internal/storage"
)

var (
	ErrNotSignedIn   = errors.New("not signed in")
	ErrEmailRequired = errors.New("email is required")
)

// avatarBase is the avatar generator seeded with the user's email.
const avatarBase = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// Preferences are the user's portal settings.
type Preferences struct {
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
}

// Progress holds the counters shown on the profile page.
type Progress struct {
	CompletedTutorials int `json:"completedTutorials"`
	SavedSnippets      int `json:"savedSnippets"`
	SearchQueries      int `json:"searchQueries"`
}

// User is the signed-in profile.
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Avatar      string      `json:"avatar"`
	Preferences Preferences `json:"preferences"`
	Progress    Progress    `json:"progress"`
}

// ProfilePatch is a partial profile update.
type ProfilePatch struct {
	Name        *string      `json:"name,omitempty"`
	Avatar      *string      `json:"avatar,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

func defaultPreferences() Preferences {
	return Preferences{Theme: "dark", Language: "javascript", Notifications: true}
}

// Service holds the current user and persists it under storage.KeyUser.
type Service struct {
	mu    sync.RWMutex
	store storage.Store
	user  *User
}

// New restores the signed-in user, if any. A corrupt stored profile is
// logged and treated as signed out.
func New(ctx context.Context, store storage.Store) (*Service, error) {
	s := &Service{store: store}

	var u User
	found, err := storage.LoadJSON(ctx, store, storage.KeyUser, &u)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		slog.Warn("discarding stored user", "error", err)
	case err != nil:
		return nil, fmt.Errorf("loading user: %w", err)
	case found:
		s.user = &u
	}
	return s, nil
}

// Login signs in with any password and carries demo progress counters.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	u, err := newUser(email, "")
	if err != nil {
		return User{}, err
	}
	u.Progress = Progress{CompletedTutorials: 12, SavedSnippets: 24, SearchQueries: 156}
	return u, s.setUser(ctx, u)
}

// Signup creates a fresh profile with zeroed progress. An empty name falls
// back to the local part of the email.
func (s *Service) Signup(ctx context.Context, email, password, name string) (User, error) {
	u, err := newUser(email, name)
	if err != nil {
		return User{}, err
	}
	return u, s.setUser(ctx, u)
}

func newUser(email, name string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, ErrEmailRequired
	}
	if name = strings.TrimSpace(name); name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return User{
		ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(email))).String(),
		Email:       email,
		Name:        name,
		Avatar:      avatarBase + url.QueryEscape(email),
		Preferences: defaultPreferences(),
	}, nil
}

func (s *Service) setUser(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := storage.SaveJSON(ctx, s.store, storage.KeyUser, u); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	s.user = &u
	return nil
}

// Logout clears the profile and removes it from storage.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("removing user: %w", err)
	}
	s.user = nil
	return nil
}

// UpdateProfile merges patch into the signed-in profile.
func (s *Service) UpdateProfile(ctx context.Context, patch ProfilePatch) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, ErrNotSignedIn
	}

	u := *s.user
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Preferences != nil {
		u.Preferences = *patch.Preferences
	}

	if err := storage.SaveJSON(ctx, s.store, storage.KeyUser, u); err != nil {
		return User{}, fmt.Errorf("saving user: %w", err)
	}
	s.user = &u
	return u, nil
}

// Current returns the signed-in user.
func (s *Service) Current() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}
