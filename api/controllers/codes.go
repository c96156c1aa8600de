package controllers

import (
	"net/http"

	"github.com/HUNTSTAR747/referred-space-server/api/responses"
	"github.com/HUNTSTAR747/referred-space-server/api/validators"
	"github.com/HUNTSTAR747/referred-space-server/internal/registry"
	pkgerrors "github.com/HUNTSTAR747/referred-space-server/pkg/errors"
	"github.com/HUNTSTAR747/referred-space-server/pkg/logger"
)

// AdminSubmitCodes registers a store, its codes, and creator pairings. The
// response itemizes what was stored and how each pairing resolved.
func AdminSubmitCodes(svc registry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "registry service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body registry.SubmitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), body.ToInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminListStores returns every store with its codes, most recent first.
func AdminListStores(svc registry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "registry service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listings, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"stores": listings})
	}
}
