package constants

import "errors"

// Configuration errors.
var (
	ErrNoBillomatID     = errors.New("no billomat id configured, use 'billomat config set billomat_id <id>' or --billomat-id")
	ErrNoAPIKey         = errors.New("no API key configured, use 'billomat config login' or --api-key")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrEmptyAPIKey      = errors.New("API key must not be empty")
	ErrConfigFileLocked = errors.New("configuration file is locked by another process")
)

// Command errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, use table, json or yaml")
	ErrInvalidID           = errors.New("id must be a positive integer")
	ErrInvalidDate         = errors.New("unrecognized date")
	ErrNotFound            = errors.New("not found")
	ErrNameRequired        = errors.New("--name flag is required")
	ErrTitleRequired       = errors.New("--title flag is required")
)
