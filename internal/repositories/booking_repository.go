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

const bookingColumns = `
	booking_id,
	booking_no,
	tenant_id,
	COALESCE(applicant_name,''),
	COALESCE(mobile_number,''),
	COALESCE(alternate_number,''),
	COALESCE(email_id,''),
	COALESCE(pincode,''),
	COALESCE(city,''),
	COALESCE(city_code,''),
	COALESCE(locality,''),
	COALESCE(locality_code,''),
	COALESCE(street_name,''),
	COALESCE(house_no,''),
	COALESCE(address_line1,''),
	COALESCE(address_line2,''),
	COALESCE(landmark,''),
	COALESCE(no_of_mobile_toilet,0),
	COALESCE(delivery_from_date,''),
	COALESCE(delivery_to_date,''),
	COALESCE(delivery_from_time,''),
	COALESCE(delivery_to_time,''),
	COALESCE(description,''),
	COALESCE(booking_status,''),
	COALESCE(payment_receipt_filestore_id,''),
	COALESCE(created_by,''),
	COALESCE(created_time,0),
	COALESCE(last_modified_by,''),
	COALESCE(last_modified_time,0)`

// BookingRepository reads and updates mt_bookings.
type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepository) table() string {
	return "mt_bookings"
}

// Search returns the bookings of a tenant matching any of the booking numbers,
// newest first. An empty filter returns an empty list.
func (r BookingRepository) Search(ctx context.Context, f models.BookingSearch) ([]models.Booking, error) {
	tenantID := strings.TrimSpace(f.TenantID)
	if tenantID == "" {
		return nil, domain.ValidationError{Field: "tenantId", Msg: "tenant id is required"}
	}
	if len(f.BookingNos) == 0 {
		return []models.Booking{}, nil
	}
	db := r.db()
	if db == nil {
		return nil, domain.UnavailableError{Dependency: "database"}
	}

	query := `SELECT ` + bookingColumns + `
		FROM ` + r.table() + `
		WHERE tenant_id=? AND booking_no IN (` + intdb.Placeholders(len(f.BookingNos)) + `)
		ORDER BY created_time DESC, booking_no ASC`

	args := append([]any{tenantID}, intdb.StringArgs(f.BookingNos)...)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search bookings: %w", err)
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search bookings: %w", err)
	}
	return out, nil
}

// Update persists the mutable part of a booking: status, receipt file and audit fields.
// An empty receipt file id never clears a stored one.
func (r BookingRepository) Update(ctx context.Context, b models.Booking) error {
	if strings.TrimSpace(b.BookingNo) == "" || strings.TrimSpace(b.TenantID) == "" {
		return domain.ValidationError{Field: "bookingNo", Msg: "booking no and tenant id are required"}
	}
	db := r.db()
	if db == nil {
		return domain.UnavailableError{Dependency: "database"}
	}

	res, err := db.ExecContext(ctx, `
		UPDATE `+r.table()+`
		SET booking_status=COALESCE(?, booking_status),
		    payment_receipt_filestore_id=COALESCE(?, payment_receipt_filestore_id),
		    last_modified_by=?,
		    last_modified_time=?
		WHERE booking_no=? AND tenant_id=?`,
		intdb.NullIfEmpty(b.BookingStatus),
		intdb.NullIfEmpty(b.PaymentReceiptFilestoreID),
		b.AuditDetails.LastModifiedBy,
		b.AuditDetails.LastModifiedTime,
		b.BookingNo,
		b.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update booking %s: %w", b.BookingNo, err)
	}
	// the DSN sets clientFoundRows, so n counts matched rows
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return domain.NotFoundError{Resource: "booking " + b.BookingNo}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(s rowScanner) (models.Booking, error) {
	var b models.Booking
	err := s.Scan(
		&b.BookingID,
		&b.BookingNo,
		&b.TenantID,
		&b.ApplicantDetail.Name,
		&b.ApplicantDetail.MobileNumber,
		&b.ApplicantDetail.AlternateNumber,
		&b.ApplicantDetail.EmailID,
		&b.Address.Pincode,
		&b.Address.City,
		&b.Address.CityCode,
		&b.Address.Locality,
		&b.Address.LocalityCode,
		&b.Address.StreetName,
		&b.Address.HouseNo,
		&b.Address.AddressLine1,
		&b.Address.AddressLine2,
		&b.Address.Landmark,
		&b.NoOfMobileToilet,
		&b.DeliveryFromDate,
		&b.DeliveryToDate,
		&b.DeliveryFromTime,
		&b.DeliveryToTime,
		&b.Description,
		&b.BookingStatus,
		&b.PaymentReceiptFilestoreID,
		&b.AuditDetails.CreatedBy,
		&b.AuditDetails.CreatedTime,
		&b.AuditDetails.LastModifiedBy,
		&b.AuditDetails.LastModifiedTime,
	)
	if err != nil {
		return models.Booking{}, fmt.Errorf("scan booking: %w", err)
	}
	return b, nil
}
