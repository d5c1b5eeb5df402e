package entity

import "context"

// Settings é a linha única com os dados do administrador. Ela é passada
// explicitamente para quem precisa (fatura, painel), nunca lida de um global.
type Settings struct {
	ID          string `json:"id,omitempty"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
	AvatarURL   string `json:"avatar_url"`
}

func DefaultSettings() Settings {
	return Settings{
		FullName:    "Admin",
		CompanyName: "Nafta24",
	}
}

type SettingsRepositoryInterface interface {
	Get(ctx context.Context) (*Settings, error)
	Create(ctx context.Context, s *Settings) error
	Update(ctx context.Context, s *Settings) error
}
