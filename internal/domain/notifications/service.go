package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Notify crea una notificación para un usuario. Lo invocan otros
// módulos (p.ej. grants al invitar); no hay endpoint público de
// creación.
func (s *Service) Notify(ctx context.Context, userID string, kind Kind, title, body string) (Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.TrimSpace(title) == "" {
		return Notification{}, ErrInvalidInput
	}

	n := Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		Title:     strings.TrimSpace(title),
		Body:      strings.TrimSpace(body),
		Read:      false,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID, unreadOnly)
}

// MarkRead es idempotente; solo el destinatario puede marcar la suya.
func (s *Service) MarkRead(ctx context.Context, id, userID string) (Notification, error) {
	id = strings.TrimSpace(id)
	userID = strings.TrimSpace(userID)
	if id == "" || userID == "" {
		return Notification{}, ErrInvalidInput
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Notification{}, ErrNotFound
	}
	if n.UserID != userID {
		return Notification{}, ErrForbidden
	}

	if n.Read {
		return n, nil
	}

	now := s.now()
	n.Read = true
	n.ReadAt = &now

	if err := s.repo.Update(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}
