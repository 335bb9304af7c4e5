package domain

// Role tags passed to the workflow timeline.
const (
	RoleCitizen  = "citizen"
	RoleEmployee = "employee"
)

// Mobile toilet business constants shared by search, PDF and payment lookups.
const (
	BusinessServiceMobileToilet = "request-service.mobile_toilet"
	ReceiptTemplateMobileToilet = "request-service.mobile_toilet-receipt"
	SessionKeyMobileToilet      = "mt"
)

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserUUID string `json:"userUuid"`
	Role     string `json:"role"`
}

// IsEmployee reports whether the caller acts as department staff.
func (r RequestContext) IsEmployee() bool {
	return r.Role == RoleEmployee
}
