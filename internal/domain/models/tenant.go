package models

// City carries the jurisdiction data printed on acknowledgements.
type City struct {
	Name         string `json:"name"`
	DistrictName string `json:"districtName"`
	RegionName   string `json:"regionName"`
}

// Tenant is the cached tenant metadata (one ULB / jurisdiction).
type Tenant struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logoId"`
	Address     string `json:"address"`
	ContactNo   string `json:"contactNumber"`
	EmailID     string `json:"emailId"`
	DomainURL   string `json:"domainUrl"`
	City        City   `json:"city"`
}
