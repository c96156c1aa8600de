package controllers

import (
	"net/http"

	"github.com/HUNTSTAR747/referred-space-server/api/responses"
	"github.com/HUNTSTAR747/referred-space-server/api/validators"
	"github.com/HUNTSTAR747/referred-space-server/internal/registry"
	pkgerrors "github.com/HUNTSTAR747/referred-space-server/pkg/errors"
	"github.com/HUNTSTAR747/referred-space-server/pkg/logger"
)

// CheckCodes answers the storefront lookup. An unknown domain is a normal
// miss, not an error.
func CheckCodes(svc registry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "registry service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body registry.CheckRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Check(r.Context(), body.Domain)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ReportCode records a checkout outcome against a known code.
func ReportCode(svc registry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "registry service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body registry.ReportRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := svc.Report(r.Context(), registry.ReportInput{
			Domain:  body.Domain,
			Code:    body.Code,
			Success: body.Success,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"success": true,
			"message": "Report recorded",
		})
	}
}
