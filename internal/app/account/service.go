package account

import (
	"context"
	"fmt"
)

// Service applies account operations to a Store.
type Service struct {
	store Store
}

// NewService returns a Service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new account whose nickname starts out equal to its user_id.
func (s *Service) Create(ctx context.Context, userID, password string) (View, error) {
	if !ValidIdentifier(userID) || !ValidSecret(password) {
		return View{}, ErrInvalidInput
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return View{}, fmt.Errorf("create: %w", err)
	}
	if _, exists := snap[userID]; exists {
		return View{}, ErrConflict
	}

	snap[userID] = Record{Password: password, Nickname: userID}
	if err := s.store.Save(ctx, snap); err != nil {
		return View{}, fmt.Errorf("create: %w", err)
	}

	return View{UserID: userID, Nickname: userID}, nil
}

// Read returns the view of a verified identity. It does not reload the store.
func (s *Service) Read(identity *Identity) View {
	return identity.View()
}

// Update applies patch to the record stored under userID.
// The record may have vanished since verification, in which case ErrNotFound is returned.
func (s *Service) Update(ctx context.Context, userID string, patch Patch) (Changes, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return Changes{}, fmt.Errorf("update: %w", err)
	}

	rec, exists := snap[userID]
	if !exists {
		return Changes{}, ErrNotFound
	}

	var changes Changes

	if patch.Nickname != nil {
		rec.Nickname = *patch.Nickname
		if rec.Nickname == "" {
			rec.Nickname = userID
		}
		nickname := rec.Nickname
		changes.Nickname = &nickname
	}

	if patch.Comment != nil {
		comment := *patch.Comment
		if comment == "" {
			rec.Comment = nil
		} else {
			c := comment
			rec.Comment = &c
		}
		changes.Comment = &comment
	}

	snap[userID] = rec
	if err := s.store.Save(ctx, snap); err != nil {
		return Changes{}, fmt.Errorf("update: %w", err)
	}

	return changes, nil
}

// Delete removes the record stored under userID.
func (s *Service) Delete(ctx context.Context, userID string) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if _, exists := snap[userID]; !exists {
		return ErrNotFound
	}

	delete(snap, userID)
	if err := s.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
