package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type TaskRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewTaskRepository(db *sql.DB, dialect Dialect) *TaskRepository {
	return &TaskRepository{DB: db, Dialect: dialect}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	query := r.Dialect.Rebind(`INSERT INTO tasks (id, client_id, title, due_date, is_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.DB.ExecContext(ctx, query, t.ID, t.ClientID, t.Title, nullString(t.DueDate), t.IsCompleted, formatTime(t.CreatedAt))
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrClientNotFound
		}
		return fmt.Errorf("erro ao criar tarefa: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	query := r.Dialect.Rebind(`SELECT id, client_id, title, due_date, is_completed, created_at FROM tasks WHERE id = ?`)
	t, err := scanTask(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrTaskNotFound
		}
		return nil, fmt.Errorf("erro ao buscar tarefa: %w", err)
	}
	return t, nil
}

// ListByClient: abertas primeiro, depois por data de entrega (sem data no fim).
func (r *TaskRepository) ListByClient(ctx context.Context, clientID string) ([]*entity.Task, error) {
	query := r.Dialect.Rebind(`SELECT id, client_id, title, due_date, is_completed, created_at FROM tasks
		WHERE client_id = ?
		ORDER BY is_completed ASC, CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, created_at ASC`)
	return r.query(ctx, query, clientID)
}

// ListOpen alimenta o "próximas tarefas" do painel.
func (r *TaskRepository) ListOpen(ctx context.Context, limit int) ([]*entity.Task, error) {
	query := r.Dialect.Rebind(`SELECT id, client_id, title, due_date, is_completed, created_at FROM tasks
		WHERE is_completed = ?
		ORDER BY CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, created_at ASC
		LIMIT ?`)
	return r.query(ctx, query, false, limit)
}

func (r *TaskRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Task, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tarefas: %w", err)
	}
	defer rows.Close()

	tasks := []*entity.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear tarefa: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	query := r.Dialect.Rebind(`UPDATE tasks SET is_completed = ? WHERE id = ?`)
	res, err := r.DB.ExecContext(ctx, query, completed, id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar tarefa: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	n, err := deleteWhere(ctx, r.DB, r.Dialect, "tasks", "id", id)
	if err != nil {
		return fmt.Errorf("erro ao deletar tarefa: %w", err)
	}
	if n == 0 {
		return entity.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteByClient(ctx context.Context, clientID string) error {
	if _, err := deleteWhere(ctx, r.DB, r.Dialect, "tasks", "client_id", clientID); err != nil {
		return fmt.Errorf("erro ao deletar tarefas do cliente: %w", err)
	}
	return nil
}

func scanTask(s scanner) (*entity.Task, error) {
	t := &entity.Task{}
	var due sql.NullString
	var createdAt string
	if err := s.Scan(&t.ID, &t.ClientID, &t.Title, &due, &t.IsCompleted, &createdAt); err != nil {
		return nil, err
	}
	t.DueDate = due.String
	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return t, nil
}
