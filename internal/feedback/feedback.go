// Package feedback records "was this helpful" votes on FAQs.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/vibe-coding/vibedocs/internal/auth"
	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/storage"
)

var (
	ErrSignInRequired = errors.New("Please sign in to rate FAQs")
	ErrInvalidVote    = errors.New("invalid vote")
)

// Vote is a user's opinion of one FAQ.
type Vote string

const (
	VoteNone       Vote = ""
	VoteHelpful    Vote = "helpful"
	VoteNotHelpful Vote = "not_helpful"
)

func (v Vote) delta() int {
	switch v {
	case VoteHelpful:
		return 1
	case VoteNotHelpful:
		return -1
	}
	return 0
}

// Identity reports the signed-in user.
type Identity interface {
	Current() (auth.User, bool)
}

// Tally is the displayed state of one FAQ for the current user.
type Tally struct {
	FAQID   string `json:"faq_id"`
	Helpful int    `json:"helpful"`
	Vote    Vote   `json:"vote"`
}

// Service keeps one vote per user per FAQ, persisted as
// map[userID]map[faqID]Vote.
type Service struct {
	mu      sync.RWMutex
	store   storage.Store
	catalog *catalog.Catalog
	users   Identity
	votes   map[string]map[string]Vote
}

// New restores stored votes. A corrupt value is logged and discarded.
func New(ctx context.Context, store storage.Store, cat *catalog.Catalog, users Identity) (*Service, error) {
	s := &Service{
		store:   store,
		catalog: cat,
		users:   users,
		votes:   make(map[string]map[string]Vote),
	}
	var stored map[string]map[string]Vote
	_, err := storage.LoadJSON(ctx, store, storage.KeyFAQVotes, &stored)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		slog.Warn("discarding stored FAQ votes", "error", err)
	case err != nil:
		return nil, err
	case stored != nil:
		s.votes = stored
	}
	return s, nil
}

// Cast applies v for the signed-in user. Casting the vote already held
// clears it; casting the other value replaces it.
func (s *Service) Cast(ctx context.Context, faqID string, v Vote) (Tally, error) {
	if v != VoteHelpful && v != VoteNotHelpful {
		return Tally{}, fmt.Errorf("%w: %q", ErrInvalidVote, v)
	}
	return s.update(ctx, faqID, func(current Vote) Vote {
		if current == v {
			return VoteNone
		}
		return v
	})
}

// Clear removes the signed-in user's vote.
func (s *Service) Clear(ctx context.Context, faqID string) (Tally, error) {
	return s.update(ctx, faqID, func(Vote) Vote { return VoteNone })
}

func (s *Service) update(ctx context.Context, faqID string, next func(Vote) Vote) (Tally, error) {
	user, ok := s.users.Current()
	if !ok {
		return Tally{}, ErrSignInRequired
	}
	faq, err := s.catalog.FAQ(faqID)
	if err != nil {
		return Tally{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	votes := cloneVotes(s.votes)
	mine := votes[user.ID]
	if mine == nil {
		mine = make(map[string]Vote)
		votes[user.ID] = mine
	}
	if v := next(mine[faqID]); v == VoteNone {
		delete(mine, faqID)
	} else {
		mine[faqID] = v
	}
	if len(mine) == 0 {
		delete(votes, user.ID)
	}

	if err := storage.SaveJSON(ctx, s.store, storage.KeyFAQVotes, votes); err != nil {
		return Tally{}, fmt.Errorf("saving votes: %w", err)
	}
	s.votes = votes
	return s.tally(faq, user.ID), nil
}

// Tally returns the displayed count of the FAQ and, when someone is signed
// in, their vote.
func (s *Service) Tally(faqID string) (Tally, error) {
	faq, err := s.catalog.FAQ(faqID)
	if err != nil {
		return Tally{}, err
	}
	var userID string
	if user, ok := s.users.Current(); ok {
		userID = user.ID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tally(faq, userID), nil
}

func (s *Service) tally(faq catalog.FAQ, userID string) Tally {
	t := Tally{FAQID: faq.ID, Helpful: faq.Helpful}
	for _, byFAQ := range s.votes {
		t.Helpful += byFAQ[faq.ID].delta()
	}
	if userID != "" {
		t.Vote = s.votes[userID][faq.ID]
	}
	return t
}

func cloneVotes(in map[string]map[string]Vote) map[string]map[string]Vote {
	out := make(map[string]map[string]Vote, len(in))
	for user, byFAQ := range in {
		out[user] = maps.Clone(byFAQ)
	}
	return out
}
