package db

import "errors"

var (
	ErrNotInitialized         = errors.New("database pool not initialized")
	ErrPendingCommandNil      = errors.New("pending command is nil")
	ErrPendingCommandNotFound = errors.New("pending command not found")
	ErrFailedToInsert         = errors.New("failed to insert record")
	ErrFailedToQuery          = errors.New("failed to execute query")
	ErrFailedToScan           = errors.New("failed to scan row")
)
