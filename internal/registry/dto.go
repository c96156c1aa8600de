package registry

import (
	"time"

	"github.com/HUNTSTAR747/referred-space-server/pkg/db/models"
	"github.com/google/uuid"
)

// StoreDTO exposes the persisted store record in API responses.
type StoreDTO struct {
	ID        uuid.UUID `json:"id"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CodeSummary is the admin-facing view of one discount code.
type CodeSummary struct {
	Code         string `json:"code"`
	Verified     bool   `json:"is_verified"`
	SuccessCount int    `json:"success_count"`
}

// StoreListing nests a store with its codes for the admin listing.
type StoreListing struct {
	ID        uuid.UUID     `json:"id"`
	Domain    string        `json:"domain"`
	Codes     []CodeSummary `json:"codes"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Link statuses reported by the submission pipeline.
const (
	LinkStatusLinked         = "linked"
	LinkStatusUnknownCreator = "unknown_creator"
	LinkStatusMissingCode    = "missing_code"
)

// LinkOutcome records one (handle, code) pairing attempt during submission.
type LinkOutcome struct {
	Handle string `json:"handle"`
	Code   string `json:"code"`
	Status string `json:"status"`
}

// SubmitReport makes the submission pipeline's partial-failure contract
// explicit: which codes were stored and how each creator pairing resolved.
type SubmitReport struct {
	StoredCodes []string      `json:"stored_codes"`
	Links       []LinkOutcome `json:"links,omitempty"`
}

// SubmitResult is the outcome of one admin code submission.
type SubmitResult struct {
	Success bool         `json:"success"`
	Store   StoreDTO     `json:"store"`
	Message string       `json:"message"`
	Report  SubmitReport `json:"report"`
}

// SubmitInput carries one admin code submission.
type SubmitInput struct {
	Domain         string
	Codes          []string
	CreatorHandles []string
}

// CreatorRef names one creator by handle in the admin submission payload.
type CreatorRef struct {
	Handle string `json:"handle" validate:"required"`
}

// SubmitRequest is the admin payload registering codes for a storefront.
type SubmitRequest struct {
	Domain   string       `json:"domain" validate:"required"`
	Codes    []string     `json:"codes" validate:"required,min=1,dive,required"`
	Creators []CreatorRef `json:"creators" validate:"omitempty,dive"`
}

// ToInput maps the request body onto the service input.
func (r SubmitRequest) ToInput() SubmitInput {
	handles := make([]string, 0, len(r.Creators))
	for _, c := range r.Creators {
		handles = append(handles, c.Handle)
	}
	return SubmitInput{
		Domain:         r.Domain,
		Codes:          r.Codes,
		CreatorHandles: handles,
	}
}

// CheckRequest is the public payload looking up codes for a storefront.
type CheckRequest struct {
	Domain string `json:"domain" validate:"required"`
}

// ReportRequest is the public payload reporting a checkout outcome.
type ReportRequest struct {
	Domain  string `json:"domain" validate:"required"`
	Code    string `json:"code" validate:"required"`
	Success bool   `json:"success"`
}

// CheckedCode is the public view of one code for a storefront.
type CheckedCode struct {
	Code         string   `json:"code"`
	Verified     bool     `json:"verified"`
	SuccessCount int      `json:"successCount"`
	Creators     []string `json:"creators"`
}

// CheckResult answers a public check-codes lookup. A domain with no store
// yields HasCodes false, never an error.
type CheckResult struct {
	HasCodes bool          `json:"hasCodes"`
	Codes    []CheckedCode `json:"codes,omitempty"`
}

// ReportInput carries one public outcome report.
type ReportInput struct {
	Domain  string
	Code    string
	Success bool
}

// StoreFromModel maps the persisted store into a DTO.
func StoreFromModel(m *models.Store) StoreDTO {
	if m == nil {
		return StoreDTO{}
	}
	return StoreDTO{
		ID:        m.ID,
		Domain:    m.Domain,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
