package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Asset é uma entrada do cofre do cliente: URL e credencial em texto puro.
// Não há criptografia; o "blur" da credencial é só visual.
type Asset struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Credentials string    `json:"credentials"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewAsset(clientID, title, url, credentials string) (*Asset, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	return &Asset{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Title:       title,
		URL:         strings.TrimSpace(url),
		Credentials: credentials,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

const maskedCredential = "••••••••"

// MaskCredential gera a versão borrada exibida antes do clique.
func MaskCredential(s string) string {
	if s == "" {
		return ""
	}
	return maskedCredential
}

type AssetRepositoryInterface interface {
	Create(ctx context.Context, a *Asset) error
	FindByID(ctx context.Context, id string) (*Asset, error)
	ListByClient(ctx context.Context, clientID string) ([]*Asset, error)
	Delete(ctx context.Context, id string) error
	DeleteByClient(ctx context.Context, clientID string) error
}
