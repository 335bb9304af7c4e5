package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "mobiletoilet/internal/config"
	intdb "mobiletoilet/internal/db"
	"mobiletoilet/internal/domain"
	"mobiletoilet/internal/domain/models"
)

const paymentStatusCancelled = "CANCELLED"

// PaymentRepository reads collected payments and their details.
type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Search returns payments whose details reference one of the consumer codes
// under the business service. Citizens never see cancelled payments.
func (r PaymentRepository) Search(ctx context.Context, f models.ReceiptSearch) ([]models.Payment, error) {
	tenantID := strings.TrimSpace(f.TenantID)
	if tenantID == "" {
		return nil, domain.ValidationError{Field: "tenantId", Msg: "tenant id is required"}
	}
	if len(f.ConsumerCodes) == 0 {
		return []models.Payment{}, nil
	}
	db := r.db()
	if db == nil {
		return nil, domain.UnavailableError{Dependency: "database"}
	}

	query := `
		SELECT p.id,
		       p.tenant_id,
		       COALESCE(p.total_amount_paid,0),
		       COALESCE(p.payment_mode,''),
		       COALESCE(p.transaction_number,''),
		       COALESCE(p.transaction_date,0),
		       COALESCE(p.payer_name,''),
		       COALESCE(p.mobile_number,''),
		       COALESCE(p.payment_status,''),
		       COALESCE(p.filestore_id,''),
		       COALESCE(d.business_service,''),
		       COALESCE(d.consumer_code,''),
		       COALESCE(d.receipt_number,''),
		       COALESCE(d.receipt_date,0),
		       COALESCE(d.total_due,0),
		       COALESCE(d.total_amount_paid,0)
		FROM mt_payments p
		JOIN mt_payment_details d ON d.payment_id = p.id
		WHERE p.tenant_id=?
		  AND d.business_service=?
		  AND d.consumer_code IN (` + intdb.Placeholders(len(f.ConsumerCodes)) + `)`
	args := []any{tenantID, f.BusinessService}
	args = append(args, intdb.StringArgs(f.ConsumerCodes)...)
	if !f.IsEmployee {
		query += ` AND COALESCE(p.payment_status,'') <> ?`
		args = append(args, paymentStatusCancelled)
	}
	query += ` ORDER BY p.transaction_date DESC, p.id ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search payments: %w", err)
	}
	defer rows.Close()

	out := []models.Payment{}
	index := map[string]int{}
	for rows.Next() {
		var p models.Payment
		var d models.PaymentDetail
		if err := rows.Scan(
			&p.ID,
			&p.TenantID,
			&p.TotalAmountPaid,
			&p.PaymentMode,
			&p.TransactionNumber,
			&p.TransactionDate,
			&p.PayerName,
			&p.MobileNumber,
			&p.PaymentStatus,
			&p.FileStoreID,
			&d.BusinessService,
			&d.ConsumerCode,
			&d.ReceiptNumber,
			&d.ReceiptDate,
			&d.TotalDue,
			&d.TotalAmountPaid,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		// one row per detail; fold details into their payment keeping first-seen order
		if i, ok := index[p.ID]; ok {
			out[i].PaymentDetails = append(out[i].PaymentDetails, d)
			continue
		}
		p.PaymentDetails = []models.PaymentDetail{d}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search payments: %w", err)
	}
	return out, nil
}
