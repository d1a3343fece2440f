package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	apiinternal "github.com/Omardiab22/VELIN-START/internal/api"
	"github.com/Omardiab22/VELIN-START/internal/respond"
	profilesvc "github.com/Omardiab22/VELIN-START/internal/service/profile"
)

// Register wires profile endpoints into the provided API router.
func Register(api huma.API, svc profilesvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "upsert-profile",
		Method:      http.MethodPost,
		Path:        "/profile/upsert",
		Summary:     "Create or update a profile",
		Description: "Merges the provided fields over the stored record; omitted fields keep their previous values.",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, input *UpsertInput) (*UpsertOutput, error) {
		_, err := svc.Upsert(ctx, input.Body.Username, profilesvc.UpsertParams{
			Email:   input.Body.Email,
			Name:    input.Body.Name,
			Mode:    input.Body.Mode,
			Message: input.Body.Message,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &UpsertOutput{Body: apiinternal.Ack{OK: true}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile/get",
		Summary:     "Get a profile",
		Description: "Retrieves the full profile record for rendering the public page.",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, input *GetInput) (*GetOutput, error) {
		p, err := svc.Get(ctx, input.Username)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &GetOutput{Body: toHTTPProfile(p)}, nil
	})
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, profilesvc.ErrUsernameRequired):
		return respond.Failure(ctx, http.StatusBadRequest, "username required")
	case errors.Is(err, profilesvc.ErrNotFound):
		return respond.Failure(ctx, http.StatusNotFound, "not_found")
	default:
		return respond.Failure(ctx, http.StatusInternalServerError, respond.ReasonServerError, err)
	}
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		Username:    p.Username,
		Email:       p.Email,
		Name:        p.Name,
		Mode:        p.Mode,
		Message:     p.Message,
		CanActivate: p.CanActivate,
	}
}
