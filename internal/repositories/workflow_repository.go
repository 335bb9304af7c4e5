package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "mobiletoilet/internal/config"
	"mobiletoilet/internal/domain"
	"mobiletoilet/internal/domain/models"
)

// WorkflowRepository reads the process history of a booking.
type WorkflowRepository struct {
	DB *sql.DB
}

func (r WorkflowRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// History returns workflow steps oldest first.
func (r WorkflowRepository) History(ctx context.Context, tenantID, businessID string) ([]models.WorkflowStep, error) {
	db := r.db()
	if db == nil {
		return nil, domain.UnavailableError{Dependency: "database"}
	}
	rows, err := db.QueryContext(ctx, `
		SELECT business_id,
		       COALESCE(action,''),
		       COALESCE(state,''),
		       COALESCE(assigner_name,''),
		       COALESCE(comment,''),
		       COALESCE(created_time,0)
		FROM mt_workflow_history
		WHERE tenant_id=? AND business_id=?
		ORDER BY created_time ASC`, tenantID, businessID)
	if err != nil {
		return nil, fmt.Errorf("workflow history: %w", err)
	}
	defer rows.Close()

	out := []models.WorkflowStep{}
	for rows.Next() {
		var s models.WorkflowStep
		if err := rows.Scan(&s.BusinessID, &s.Action, &s.State, &s.AssignerName, &s.Comment, &s.CreatedTime); err != nil {
			return nil, fmt.Errorf("scan workflow step: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
