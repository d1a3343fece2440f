package eligibility

// CheckInput for POST /check-eligibility. The email is validated in the
// handler so a missing value maps to the documented 400 envelope rather than
// a schema error.
type CheckInput struct {
	Body struct {
		Email string `json:"email,omitempty" doc:"Customer email to check" example:"jane@example.com"`
	}
}
