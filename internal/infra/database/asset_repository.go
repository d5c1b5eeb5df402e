package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type AssetRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewAssetRepository(db *sql.DB, dialect Dialect) *AssetRepository {
	return &AssetRepository{DB: db, Dialect: dialect}
}

func (r *AssetRepository) Create(ctx context.Context, a *entity.Asset) error {
	query := r.Dialect.Rebind(`INSERT INTO client_assets (id, client_id, title, url, credentials, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.DB.ExecContext(ctx, query, a.ID, a.ClientID, a.Title, a.URL, a.Credentials, formatTime(a.CreatedAt))
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrClientNotFound
		}
		return fmt.Errorf("erro ao criar ativo: %w", err)
	}
	return nil
}

func (r *AssetRepository) FindByID(ctx context.Context, id string) (*entity.Asset, error) {
	query := r.Dialect.Rebind(`SELECT id, client_id, title, url, credentials, created_at FROM client_assets WHERE id = ?`)
	a, err := scanAsset(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrAssetNotFound
		}
		return nil, fmt.Errorf("erro ao buscar ativo: %w", err)
	}
	return a, nil
}

func (r *AssetRepository) ListByClient(ctx context.Context, clientID string) ([]*entity.Asset, error) {
	query := r.Dialect.Rebind(`SELECT id, client_id, title, url, credentials, created_at FROM client_assets
		WHERE client_id = ? ORDER BY created_at DESC, id DESC`)
	rows, err := r.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar ativos: %w", err)
	}
	defer rows.Close()

	assets := []*entity.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear ativo: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *AssetRepository) Delete(ctx context.Context, id string) error {
	n, err := deleteWhere(ctx, r.DB, r.Dialect, "client_assets", "id", id)
	if err != nil {
		return fmt.Errorf("erro ao deletar ativo: %w", err)
	}
	if n == 0 {
		return entity.ErrAssetNotFound
	}
	return nil
}

func (r *AssetRepository) DeleteByClient(ctx context.Context, clientID string) error {
	if _, err := deleteWhere(ctx, r.DB, r.Dialect, "client_assets", "client_id", clientID); err != nil {
		return fmt.Errorf("erro ao deletar ativos do cliente: %w", err)
	}
	return nil
}

func scanAsset(s scanner) (*entity.Asset, error) {
	a := &entity.Asset{}
	var createdAt string
	if err := s.Scan(&a.ID, &a.ClientID, &a.Title, &a.URL, &a.Credentials, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return a, nil
}
