package models

// ApplicantDetail holds the citizen contact data captured at booking time.
type ApplicantDetail struct {
	Name            string `json:"name"`
	MobileNumber    string `json:"mobileNumber"`
	AlternateNumber string `json:"alternateNumber"`
	EmailID         string `json:"emailId"`
}

// Address is the delivery location of the mobile toilets.
type Address struct {
	Pincode      string `json:"pincode"`
	City         string `json:"city"`
	CityCode     string `json:"cityCode"`
	Locality     string `json:"locality"`
	LocalityCode string `json:"localityCode"`
	StreetName   string `json:"streetName"`
	HouseNo      string `json:"houseNo"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	Landmark     string `json:"landmark"`
}

// AuditDetails mirrors the audit block of the booking store.
type AuditDetails struct {
	CreatedBy        string `json:"createdBy"`
	CreatedTime      int64  `json:"createdTime"`
	LastModifiedBy   string `json:"lastModifiedBy"`
	LastModifiedTime int64  `json:"lastModifiedTime"`
}

// Booking is a mobile toilet booking as returned by the booking search.
type Booking struct {
	BookingID                 string          `json:"bookingId"`
	BookingNo                 string          `json:"bookingNo"`
	TenantID                  string          `json:"tenantId"`
	ApplicantDetail           ApplicantDetail `json:"applicantDetail"`
	Address                   Address         `json:"address"`
	NoOfMobileToilet          int             `json:"noOfMobileToilet"`
	DeliveryFromDate          string          `json:"deliveryFromDate"`
	DeliveryToDate            string          `json:"deliveryToDate"`
	DeliveryFromTime          string          `json:"deliveryFromTime"`
	DeliveryToTime            string          `json:"deliveryToTime"`
	Description               string          `json:"description"`
	BookingStatus             string          `json:"bookingStatus"`
	PaymentReceiptFilestoreID string          `json:"paymentReceiptFilestoreId"`
	AuditDetails              AuditDetails    `json:"auditDetails"`
}

// IsZero reports whether the record is the empty default used when nothing matched.
func (b Booking) IsZero() bool {
	return b.BookingNo == "" && b.BookingID == ""
}

// BookingSearch filters the booking search.
type BookingSearch struct {
	TenantID   string
	BookingNos []string
}
