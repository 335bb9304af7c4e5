package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "mobiletoilet/internal/config"
	"mobiletoilet/internal/domain"
	"mobiletoilet/internal/domain/models"
)

// TenantRepository lists tenant metadata.
type TenantRepository struct {
	DB *sql.DB
}

func (r TenantRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TenantRepository) List(ctx context.Context) ([]models.Tenant, error) {
	db := r.db()
	if db == nil {
		return nil, domain.UnavailableError{Dependency: "database"}
	}
	rows, err := db.QueryContext(ctx, `
		SELECT code,
		       COALESCE(name,''),
		       COALESCE(description,''),
		       COALESCE(logo_id,''),
		       COALESCE(address,''),
		       COALESCE(contact_number,''),
		       COALESCE(email_id,''),
		       COALESCE(domain_url,''),
		       COALESCE(city_name,''),
		       COALESCE(district_name,''),
		       COALESCE(region_name,'')
		FROM tenants
		ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	out := []models.Tenant{}
	for rows.Next() {
		var t models.Tenant
		if err := rows.Scan(
			&t.Code,
			&t.Name,
			&t.Description,
			&t.Logo,
			&t.Address,
			&t.ContactNo,
			&t.EmailID,
			&t.DomainURL,
			&t.City.Name,
			&t.City.DistrictName,
			&t.City.RegionName,
		); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
