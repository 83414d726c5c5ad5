package controllers

import (
	"net/http"

	"github.com/bonappetit-bakery/bakery-backend/api/responses"
	"github.com/bonappetit-bakery/bakery-backend/api/validators"
	"github.com/bonappetit-bakery/bakery-backend/internal/orders"
	pkgerrors "github.com/bonappetit-bakery/bakery-backend/pkg/errors"
	"github.com/bonappetit-bakery/bakery-backend/pkg/logger"
)

// PlaceOrder handles guest checkout. The server recomputes the total from the
// catalog and rejects the request when it disagrees with the submitted one.
func PlaceOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var input orders.PlaceOrderInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		placed, err := svc.Place(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, placed)
	}
}
