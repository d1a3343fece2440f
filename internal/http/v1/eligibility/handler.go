package eligibility

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Omardiab22/VELIN-START/internal/respond"
	eligibilitysvc "github.com/Omardiab22/VELIN-START/internal/service/eligibility"
	wuiltsvc "github.com/Omardiab22/VELIN-START/internal/service/wuilt"
)

// Register wires the eligibility endpoint into the provided API router.
func Register(api huma.API, orders wuiltsvc.Service, matcher *eligibilitysvc.Matcher) {
	huma.Register(api, huma.Operation{
		OperationID: "check-eligibility",
		Method:      http.MethodPost,
		Path:        "/check-eligibility",
		Summary:     "Check purchase eligibility",
		Description: "Checks whether the given email has a past order containing a qualifying product.",
		Tags:        []string{"Eligibility"},
	}, func(ctx context.Context, input *CheckInput) (*CheckOutput, error) {
		email := strings.ToLower(strings.TrimSpace(input.Body.Email))
		if email == "" {
			return nil, respond.Failure(ctx, http.StatusBadRequest, "email required")
		}

		page, err := orders.ListOrders(ctx)
		if err != nil {
			return nil, respond.Failure(ctx, http.StatusInternalServerError, respond.ReasonServerError, err)
		}

		return &CheckOutput{Body: CheckResult{
			OK:       true,
			Eligible: matcher.Match(email, page),
		}}, nil
	})
}
