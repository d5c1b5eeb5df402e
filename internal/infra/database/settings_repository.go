package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

type SettingsRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSettingsRepository(db *sql.DB, dialect Dialect) *SettingsRepository {
	return &SettingsRepository{DB: db, Dialect: dialect}
}

// Get lê a linha única. Se houver mais de uma (dado legado), vale a primeira por id.
func (r *SettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	s := &entity.Settings{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, full_name, company_name, avatar_url FROM settings ORDER BY id LIMIT 1`,
	).Scan(&s.ID, &s.FullName, &s.CompanyName, &s.AvatarURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("erro ao buscar configurações: %w", err)
	}
	return s, nil
}

func (r *SettingsRepository) Create(ctx context.Context, s *entity.Settings) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := r.Dialect.Rebind(`INSERT INTO settings (id, full_name, company_name, avatar_url) VALUES (?, ?, ?, ?)`)
	if _, err := r.DB.ExecContext(ctx, query, s.ID, s.FullName, s.CompanyName, s.AvatarURL); err != nil {
		return fmt.Errorf("erro ao criar configurações: %w", err)
	}
	return nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *entity.Settings) error {
	query := r.Dialect.Rebind(`UPDATE settings SET full_name = ?, company_name = ?, avatar_url = ? WHERE id = ?`)
	res, err := r.DB.ExecContext(ctx, query, s.FullName, s.CompanyName, s.AvatarURL, s.ID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar configurações: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrSettingsNotFound
	}
	return nil
}
