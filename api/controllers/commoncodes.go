package controllers

import (
	"net/http"

	"github.com/bonappetit-bakery/bakery-backend/api/responses"
	"github.com/bonappetit-bakery/bakery-backend/internal/commoncode"
	pkgerrors "github.com/bonappetit-bakery/bakery-backend/pkg/errors"
	"github.com/bonappetit-bakery/bakery-backend/pkg/logger"
)

// ReloadCommonCodes swaps in a fresh common-code snapshot. Operators call it
// after editing the common_code table.
func ReloadCommonCodes(cache *commoncode.Cache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cache == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "common-code cache unavailable"))
			return
		}

		if err := cache.Reload(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload common codes"))
			return
		}

		if logg != nil {
			logg.Info(r.Context(), "common codes reloaded")
		}
		responses.WriteSuccess(w, map[string]string{"status": "reloaded"})
	}
}
