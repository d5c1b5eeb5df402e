package entity

import "time"

const (
	CollectionClients  = "clients"
	CollectionTasks    = "tasks"
	CollectionAssets   = "client_assets"
	CollectionSettings = "settings"
	CollectionEmails   = "email_logs"

	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionDeleted     = "deleted"
	ActionFollowUpDue = "followup_due"
)

// ChangeEvent avisa os painéis abertos que um registro mudou; eles buscam
// a versão oficial em vez de remendar a lista local.
type ChangeEvent struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	ID         string    `json:"id"`
	At         time.Time `json:"at"`
}

func NewChangeEvent(collection, action, id string) ChangeEvent {
	return ChangeEvent{
		Collection: collection,
		Action:     action,
		ID:         id,
		At:         time.Now().UTC(),
	}
}
