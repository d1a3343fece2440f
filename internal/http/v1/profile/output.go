package profile

import (
	apiinternal "github.com/Omardiab22/VELIN-START/internal/api"
)

// UpsertOutput for POST /profile/upsert.
type UpsertOutput struct {
	Body apiinternal.Ack
}

// GetOutput for GET /profile/get.
type GetOutput struct {
	Body Profile
}
