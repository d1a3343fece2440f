// Package webhook receives Wuilt order notifications and marks matching
// profiles as activatable. Deliveries are always acknowledged with 200 so the
// sender does not retry; processing problems are logged and swallowed.
package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	appmiddleware "github.com/Omardiab22/VELIN-START/internal/middleware"
	profilesvc "github.com/Omardiab22/VELIN-START/internal/service/profile"
)

const maxBodyBytes = 1 << 20

var errNoCustomerEmail = errors.New("no customer email in delivery")

type orderPayload struct {
	Customer struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// deliveryPayload accepts both notification shapes: the order at the top
// level, or nested under a payload wrapper.
type deliveryPayload struct {
	Order   *orderPayload `json:"order"`
	Payload *struct {
		Order *orderPayload `json:"order"`
	} `json:"payload"`
}

// Handler returns the order notification endpoint.
func Handler(store profilesvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, err := customerEmail(r.Body)
		switch {
		case err != nil:
			appmiddleware.LogWarn(r.Context(), "webhook delivery ignored", zap.Error(err))
		default:
			count, actErr := store.ActivateByEmail(r.Context(), email)
			if actErr != nil {
				appmiddleware.LogError(r.Context(), "webhook activation failed", actErr,
					zap.String("email", email))
				break
			}
			appmiddleware.LogInfo(r.Context(), "webhook delivery processed",
				zap.String("email", email),
				zap.Int("activated", count))
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// customerEmail extracts the purchaser email from either delivery shape.
func customerEmail(body io.Reader) (string, error) {
	var delivery deliveryPayload
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&delivery); err != nil {
		return "", err
	}

	order := delivery.Order
	if order == nil && delivery.Payload != nil {
		order = delivery.Payload.Order
	}
	if order == nil {
		return "", errNoCustomerEmail
	}

	email := strings.ToLower(strings.TrimSpace(order.Customer.Email))
	if email == "" {
		return "", errNoCustomerEmail
	}
	return email, nil
}
