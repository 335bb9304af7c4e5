package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "mobiletoilet/internal/config"
	"mobiletoilet/internal/domain"
	"mobiletoilet/internal/domain/models"
)

// FilestoreRepository keeps generated documents in mt_filestore.
type FilestoreRepository struct {
	DB *sql.DB
}

func (r FilestoreRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r FilestoreRepository) Save(ctx context.Context, f models.StoredFile) error {
	if strings.TrimSpace(f.ID) == "" || strings.TrimSpace(f.TenantID) == "" {
		return domain.ValidationError{Field: "fileStoreId", Msg: "file id and tenant id are required"}
	}
	db := r.db()
	if db == nil {
		return domain.UnavailableError{Dependency: "database"}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO mt_filestore (id, tenant_id, module, file_name, content_type, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.TenantID, f.Module, f.FileName, f.ContentType, f.Content, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save file %s: %w", f.ID, err)
	}
	return nil
}

func (r FilestoreRepository) Get(ctx context.Context, tenantID, id string) (models.StoredFile, error) {
	db := r.db()
	if db == nil {
		return models.StoredFile{}, domain.UnavailableError{Dependency: "database"}
	}
	var f models.StoredFile
	err := db.QueryRowContext(ctx, `
		SELECT id, tenant_id, COALESCE(module,''), file_name, content_type, content, created_at
		FROM mt_filestore
		WHERE id=? AND tenant_id=?
		LIMIT 1`, id, tenantID,
	).Scan(&f.ID, &f.TenantID, &f.Module, &f.FileName, &f.ContentType, &f.Content, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StoredFile{}, domain.NotFoundError{Resource: "file " + id, Err: err}
		}
		return models.StoredFile{}, fmt.Errorf("get file %s: %w", id, err)
	}
	return f, nil
}
