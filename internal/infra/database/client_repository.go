package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

const clientColumns = `id, name, email, phone, service, price, status, type, source,
	pipeline_stage, next_follow_up, address, city, state, zip,
	invoice_date, due_date, notes, created_at, updated_at`

type ClientRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewClientRepository(db *sql.DB, dialect Dialect) *ClientRepository {
	return &ClientRepository{DB: db, Dialect: dialect}
}

func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) error {
	query := r.Dialect.Rebind(`INSERT INTO clients (` + clientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Service, c.Price, c.Status, c.Type, c.Source,
		c.PipelineStage, c.NextFollowUp, c.Address, c.City, c.State, c.Zip,
		c.InvoiceDate, c.DueDate, c.Notes, formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}
	return nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	query := r.Dialect.Rebind(`SELECT ` + clientColumns + ` FROM clients WHERE id = ?`)

	c, err := scanClient(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrClientNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	return c, nil
}

// List devolve os registros do escopo, mais novo primeiro.
func (r *ClientRepository) List(ctx context.Context, scope entity.ClientScope) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	var args []any
	switch scope {
	case entity.ScopeLeads:
		query += ` WHERE type = ?`
		args = append(args, entity.TypeLead)
	case entity.ScopeClients:
		query += ` WHERE type <> ?`
		args = append(args, entity.TypeLead)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	return r.query(ctx, r.Dialect.Rebind(query), args...)
}

// ListDueFollowUps traz os leads com retorno marcado até o dia informado (YYYY-MM-DD).
func (r *ClientRepository) ListDueFollowUps(ctx context.Context, day string) ([]*entity.Client, error) {
	query := r.Dialect.Rebind(`SELECT ` + clientColumns + ` FROM clients
		WHERE type = ? AND next_follow_up <> '' AND next_follow_up <= ?
		ORDER BY next_follow_up ASC`)
	return r.query(ctx, query, entity.TypeLead, day)
}

func (r *ClientRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Client, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	clients := []*entity.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// UpdateFields grava só as colunas presentes no patch. Com
// ExpectedUpdatedAt, a escrita só acontece se ninguém gravou antes.
func (r *ClientRepository) UpdateFields(ctx context.Context, id string, patch entity.ClientPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	fields := patch.Fields()
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+3)
	for _, f := range fields {
		sets = append(sets, pq.QuoteIdentifier(f)+" = ?")
		args = append(args, patch.Value(f))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(time.Now()))

	query := `UPDATE clients SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)
	if patch.ExpectedUpdatedAt != nil {
		query += ` AND updated_at = ?`
		args = append(args, formatTime(*patch.ExpectedUpdatedAt))
	}

	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}
	if n > 0 {
		return nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return entity.ErrStaleWrite
}

// Delete apaga só a linha do cliente. Tarefas e ativos saem antes, pelo caso de uso.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	n, err := deleteWhere(ctx, r.DB, r.Dialect, "clients", "id", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cliente ainda tem registros filhos: %w", err)
		}
		return fmt.Errorf("erro ao deletar cliente: %w", err)
	}
	if n == 0 {
		return entity.ErrClientNotFound
	}
	return nil
}

func scanClient(s scanner) (*entity.Client, error) {
	c := &entity.Client{}
	var createdAt, updatedAt string
	err := s.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Service, &c.Price, &c.Status, &c.Type, &c.Source,
		&c.PipelineStage, &c.NextFollowUp, &c.Address, &c.City, &c.State, &c.Zip,
		&c.InvoiceDate, &c.DueDate, &c.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return c, nil
}
