package models

// Download option actions.
const (
	ActionAcknowledgement = "acknowledgement"
	ActionFeeReceipt      = "receipt"
)

// DownloadOption is a derived (label, action) pair offered on the page header.
type DownloadOption struct {
	Label  string `json:"label"`
	Action string `json:"action"`
	Href   string `json:"href"`
}

// Toast is a dismissible status message.
type Toast struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Row is one labeled value.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a titled group of rows; the booking number section has no title.
type Section struct {
	Title string `json:"title,omitempty"`
	Rows  []Row  `json:"rows"`
}

// DetailsView is everything the booking details page renders.
type DetailsView struct {
	Title           string           `json:"title"`
	TenantID        string           `json:"tenantId"`
	Application     Booking          `json:"application"`
	Sections        []Section        `json:"sections"`
	DownloadOptions []DownloadOption `json:"downloadOptions"`
	ReceiptLoading  bool             `json:"receiptLoading"`
	Payments        []Payment        `json:"-"`
	Timeline        Timeline         `json:"timeline"`
	Toast           *Toast           `json:"toast,omitempty"`
}
