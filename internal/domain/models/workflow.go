package models

// WorkflowStep is one entry of a booking's process history.
type WorkflowStep struct {
	BusinessID   string `json:"businessId"`
	Action       string `json:"action"`
	State        string `json:"state"`
	AssignerName string `json:"assignerName"`
	Comment      string `json:"comment"`
	CreatedTime  int64  `json:"createdTime"`
}

// Timeline is the rendered workflow history passed to the page.
type Timeline struct {
	BusinessID string         `json:"businessId"`
	UserType   string         `json:"userType"`
	Steps      []WorkflowStep `json:"steps"`
}
