package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task pertence a exatamente um cliente. Sem dependência entre tarefas.
type Task struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Title       string    `json:"title"`
	DueDate     string    `json:"due_date,omitempty"` // YYYY-MM-DD, opcional
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewTask(clientID, title, dueDate string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	dueDate = strings.TrimSpace(dueDate)
	if dueDate != "" && !IsDate(dueDate) {
		return nil, ErrInvalidDate
	}

	return &Task{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Title:     title,
		DueDate:   dueDate,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func IsDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	ListByClient(ctx context.Context, clientID string) ([]*Task, error)
	ListOpen(ctx context.Context, limit int) ([]*Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
	DeleteByClient(ctx context.Context, clientID string) error
}
