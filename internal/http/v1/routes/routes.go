package routes

import (
	"github.com/danielgtaylor/huma/v2"

	eligibilityhandler "github.com/Omardiab22/VELIN-START/internal/http/v1/eligibility"
	profilehandler "github.com/Omardiab22/VELIN-START/internal/http/v1/profile"
	eligibilitysvc "github.com/Omardiab22/VELIN-START/internal/service/eligibility"
	profilesvc "github.com/Omardiab22/VELIN-START/internal/service/profile"
	wuiltsvc "github.com/Omardiab22/VELIN-START/internal/service/wuilt"
)

// Register wires all API routes into the provided router. The webhook
// endpoint is mounted separately on the chi router because it answers with
// plain text instead of the JSON envelope.
func Register(
	api huma.API,
	orders wuiltsvc.Service,
	matcher *eligibilitysvc.Matcher,
	profiles profilesvc.Service,
) {
	eligibilityhandler.Register(api, orders, matcher)
	profilehandler.Register(api, profiles)
}
