package profile

// UpsertInput for POST /profile/upsert. All fields except username merge over
// the stored record; username presence is checked in the handler so a missing
// value maps to the documented 400 envelope.
type UpsertInput struct {
	Body struct {
		Username string  `json:"username,omitempty" doc:"Profile username (store key)" example:"bob"`
		Email    *string `json:"email,omitempty"    doc:"Purchase email"                example:"bob@example.com"`
		Name     *string `json:"name,omitempty"     doc:"Display name"                  example:"Bob"`
		Mode     *string `json:"mode,omitempty"     doc:"Display mode"                  example:"generic"`
		Message  *string `json:"message,omitempty"  doc:"Profile message"               example:"Hi there"`
	}
}

// GetInput for GET /profile/get.
type GetInput struct {
	Username string `query:"username" doc:"Profile username" example:"bob"`
}
