package models

import "time"

// StoredFile is a generated document kept in the file store.
type StoredFile struct {
	ID          string
	TenantID    string
	Module      string
	FileName    string
	ContentType string
	Content     []byte
	CreatedAt   time.Time
}
