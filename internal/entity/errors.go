package entity

import "errors"

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrAssetNotFound    = errors.New("asset not found")
	ErrSettingsNotFound = errors.New("settings not found")

	ErrNotALead      = errors.New("record is not a lead")
	ErrStaleWrite    = errors.New("record was modified by another write")
	ErrNameRequired  = errors.New("name is required")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidField  = errors.New("invalid field")
)
