package profile

// Profile is the public profile representation.
type Profile struct {
	Username    string `json:"username"    doc:"Profile username (lowercase)" example:"bob"`
	Email       string `json:"email"       doc:"Purchase email (lowercase)"   example:"bob@example.com"`
	Name        string `json:"name"        doc:"Display name"                 example:"Bob"`
	Mode        string `json:"mode"        doc:"Display mode"                 example:"generic"`
	Message     string `json:"message"     doc:"Profile message"              example:"Hi there"`
	CanActivate bool   `json:"canActivate" doc:"Set once a purchase webhook matched this profile's email" example:"false"`
}
