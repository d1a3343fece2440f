// Package api defines the wire envelope shared by every JSON endpoint.
package api

// Ack is the body returned by write operations that have no payload.
type Ack struct {
	OK bool `json:"ok" doc:"Always true on success" example:"true"`
}

// Failure is the body returned by every failed request.
type Failure struct {
	OK     bool   `json:"ok"     doc:"Always false on failure"                example:"false"`
	Reason string `json:"reason" doc:"Short machine-readable failure reason" example:"not_found"`
}

// NewFailure constructs a failure envelope for the given reason.
func NewFailure(reason string) Failure {
	return Failure{OK: false, Reason: reason}
}
