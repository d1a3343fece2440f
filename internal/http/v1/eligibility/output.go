package eligibility

// CheckResult is the success body for an eligibility check.
type CheckResult struct {
	OK       bool `json:"ok"       doc:"Always true on success"                 example:"true"`
	Eligible bool `json:"eligible" doc:"Whether a qualifying purchase was found" example:"true"`
}

// CheckOutput for POST /check-eligibility.
type CheckOutput struct {
	Body CheckResult
}
