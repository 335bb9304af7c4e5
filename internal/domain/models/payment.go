package models

// PaymentDetail links a payment to the bill of one consumer code.
type PaymentDetail struct {
	BusinessService string  `json:"businessService"`
	ConsumerCode    string  `json:"consumerCode"`
	ReceiptNumber   string  `json:"receiptNumber"`
	ReceiptDate     int64   `json:"receiptDate"`
	TotalDue        float64 `json:"totalDue"`
	TotalAmountPaid float64 `json:"totalAmountPaid"`
}

// Payment is a collected payment as returned by the receipt search.
type Payment struct {
	ID                string          `json:"id"`
	TenantID          string          `json:"tenantId"`
	TotalAmountPaid   float64         `json:"totalAmountPaid"`
	PaymentMode       string          `json:"paymentMode"`
	TransactionNumber string          `json:"transactionNumber"`
	TransactionDate   int64           `json:"transactionDate"`
	PayerName         string          `json:"payerName"`
	MobileNumber      string          `json:"mobileNumber"`
	PaymentStatus     string          `json:"paymentStatus"`
	FileStoreID       string          `json:"fileStoreId"`
	PaymentDetails    []PaymentDetail `json:"paymentDetails"`
}

// ReceiptSearch filters the receipt search.
type ReceiptSearch struct {
	TenantID        string
	BusinessService string
	ConsumerCodes   []string
	IsEmployee      bool
}
