package account

import (
	"context"
	"fmt"

	"useracct/internal/pkg/auth/basic"
)

// Identity is a verified caller bound to the record loaded during verification.
type Identity struct {
	UserID string
	Record Record
}

// View returns the outward representation of the verified record.
func (i *Identity) View() View {
	return viewOf(i.UserID, i.Record)
}

// Verify checks an Authorization header against the stored snapshot.
//
// A missing or malformed header yields ErrUnauthenticated without touching the
// store. Otherwise the snapshot is loaded and the credential must name an
// existing account, carry its exact password, and, when target is non-empty,
// name target itself. Any of those failing yields the same ErrForbidden.
func (s *Service) Verify(ctx context.Context, header, target string) (*Identity, error) {
	userID, secret, err := basic.ParseHeader(header)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	rec, exists := snap[userID]
	if !exists || rec.Password != secret || (target != "" && userID != target) {
		return nil, ErrForbidden
	}

	return &Identity{UserID: userID, Record: rec}, nil
}
