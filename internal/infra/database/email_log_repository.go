package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// EmailLogRepository só insere e lista: o histórico é append-only.
type EmailLogRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewEmailLogRepository(db *sql.DB, dialect Dialect) *EmailLogRepository {
	return &EmailLogRepository{DB: db, Dialect: dialect}
}

func (r *EmailLogRepository) Create(ctx context.Context, l *entity.EmailLog) error {
	query := r.Dialect.Rebind(`INSERT INTO email_logs (id, client_id, client_name, email, subject, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.DB.ExecContext(ctx, query,
		l.ID, l.ClientID, l.ClientName, l.Email, l.Subject, l.Message, l.Status, formatTime(l.CreatedAt))
	if err != nil {
		return fmt.Errorf("erro ao registrar email: %w", err)
	}
	return nil
}

func (r *EmailLogRepository) List(ctx context.Context) ([]*entity.EmailLog, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, client_id, client_name, email, subject, message, status, created_at
		FROM email_logs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar emails: %w", err)
	}
	defer rows.Close()

	logs := []*entity.EmailLog{}
	for rows.Next() {
		l := &entity.EmailLog{}
		var createdAt string
		if err := rows.Scan(&l.ID, &l.ClientID, &l.ClientName, &l.Email, &l.Subject, &l.Message, &l.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear email: %w", err)
		}
		if l.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
