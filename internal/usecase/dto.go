package usecase

import "github.com/xavierca1/ligue-crm/internal/entity"

type ListClientsInput struct {
	Search string `json:"search"`
	Status string `json:"status"` // "" ou "All" = todos
}

type CreateLeadInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Source string `json:"source"`
}

type AddTaskInput struct {
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
}

type AddAssetInput struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Credentials string `json:"credentials"`
}

// AssetOutput leva a credencial aberta e a mascarada; quem exibe escolhe.
type AssetOutput struct {
	*entity.Asset
	MaskedCredentials string `json:"masked_credentials"`
}

func NewAssetOutput(a *entity.Asset) AssetOutput {
	return AssetOutput{Asset: a, MaskedCredentials: entity.MaskCredential(a.Credentials)}
}

type SendEmailInput struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}
