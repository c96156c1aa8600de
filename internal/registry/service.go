package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HUNTSTAR747/referred-space-server/pkg/db/models"
	pkgerrors "github.com/HUNTSTAR747/referred-space-server/pkg/errors"
	"github.com/HUNTSTAR747/referred-space-server/pkg/logger"
	"github.com/HUNTSTAR747/referred-space-server/pkg/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the registry controllers.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
	List(ctx context.Context) ([]StoreListing, error)
	Check(ctx context.Context, domain string) (*CheckResult, error)
	Report(ctx context.Context, input ReportInput) error
}

type registryRepository interface {
	UpsertStore(ctx context.Context, domain string) (*models.Store, error)
	FindStoreByDomain(ctx context.Context, domain string) (*models.Store, error)
	UpsertCode(ctx context.Context, storeID uuid.UUID, code string) error
	FindCode(ctx context.Context, storeID uuid.UUID, code string) (*models.DiscountCode, error)
	UpsertCreatorCode(ctx context.Context, creatorID, codeID uuid.UUID) error
	ListStores(ctx context.Context) ([]models.Store, error)
	ListCodes(ctx context.Context, storeID uuid.UUID) ([]models.DiscountCode, error)
	RecordOutcome(ctx context.Context, codeID uuid.UUID, success bool) error
}

type creatorFinder interface {
	FindByHandle(ctx context.Context, handle string) (*models.Creator, error)
}

type service struct {
	repo     registryRepository
	creators creatorFinder
	logger   *logger.Logger
}

// NewService constructs the registry service with the provided dependencies.
func NewService(repo registryRepository, creators creatorFinder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("registry repository is required")
	}
	if creators == nil {
		return nil, fmt.Errorf("creators repository is required")
	}
	return &service{repo: repo, creators: creators, logger: logg}, nil
}

// Submit runs the ordered pipeline: store upsert, code upserts, then one
// creator-code edge per (handle, code) pair. The pipeline is intentionally
// not atomic; each step that lands stays landed, and the returned report
// states what happened at every step.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	domain := strings.TrimSpace(input.Domain)
	if domain == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "domain is required")
	}

	store, err := s.repo.UpsertStore(ctx, domain)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert store")
	}

	result := &SubmitResult{
		Success: true,
		Store:   StoreFromModel(store),
		Message: "Codes added successfully",
	}

	for _, raw := range input.Codes {
		code := strings.TrimSpace(raw)
		if code == "" {
			continue
		}
		if err := s.repo.UpsertCode(ctx, store.ID, code); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert code").
				WithDetails(map[string]any{"step": "codes", "code": code})
		}
		result.Report.StoredCodes = append(result.Report.StoredCodes, code)
	}

	for _, rawHandle := range input.CreatorHandles {
		handle := strings.TrimSpace(rawHandle)
		if handle == "" {
			continue
		}
		creator, err := s.creators.FindByHandle(ctx, handle)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup creator").
					WithDetails(map[string]any{"step": "links", "handle": handle})
			}
			for _, code := range result.Report.StoredCodes {
				result.Report.Links = append(result.Report.Links, LinkOutcome{
					Handle: handle,
					Code:   code,
					Status: LinkStatusUnknownCreator,
				})
			}
			continue
		}

		for _, code := range result.Report.StoredCodes {
			outcome := LinkOutcome{Handle: handle, Code: code}
			codeRow, err := s.repo.FindCode(ctx, store.ID, code)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup code").
						WithDetails(map[string]any{"step": "links", "code": code})
				}
				outcome.Status = LinkStatusMissingCode
				result.Report.Links = append(result.Report.Links, outcome)
				continue
			}
			if err := s.repo.UpsertCreatorCode(ctx, creator.ID, codeRow.ID); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "link creator code").
					WithDetails(map[string]any{"step": "links", "handle": handle, "code": code})
			}
			outcome.Status = LinkStatusLinked
			result.Report.Links = append(result.Report.Links, outcome)
		}
	}

	if s.logger != nil {
		lctx := s.logger.WithDomain(ctx, domain)
		lctx = s.logger.WithField(lctx, "stored_codes", len(result.Report.StoredCodes))
		s.logger.Info(lctx, "store codes submitted")
	}

	return result, nil
}

// List returns every store with its codes, most recently updated first.
func (s *service) List(ctx context.Context) ([]StoreListing, error) {
	stores, err := s.repo.ListStores(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stores")
	}

	listings := make([]StoreListing, 0, len(stores))
	for _, store := range stores {
		listing := StoreListing{
			ID:        store.ID,
			Domain:    store.Domain,
			Codes:     make([]CodeSummary, 0, len(store.Codes)),
			UpdatedAt: store.UpdatedAt,
		}
		for _, code := range store.Codes {
			listing.Codes = append(listing.Codes, CodeSummary{
				Code:         code.Code,
				Verified:     code.IsVerified,
				SuccessCount: code.SuccessCount,
			})
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// Check answers the public lookup for one domain. An unknown domain is an
// expected outcome and maps to HasCodes false.
func (s *service) Check(ctx context.Context, domain string) (*CheckResult, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "domain is required")
	}

	store, err := s.repo.FindStoreByDomain(ctx, domain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordCheck(false)
			return &CheckResult{HasCodes: false}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup store")
	}

	codes, err := s.repo.ListCodes(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list codes")
	}

	result := &CheckResult{HasCodes: len(codes) > 0}
	for _, code := range codes {
		checked := CheckedCode{
			Code:         code.Code,
			Verified:     code.IsVerified,
			SuccessCount: code.SuccessCount,
			Creators:     make([]string, 0, len(code.CreatorCodes)),
		}
		for _, edge := range code.CreatorCodes {
			if edge.Creator != nil {
				checked.Creators = append(checked.Creators, edge.Creator.InstagramHandle)
			}
		}
		result.Codes = append(result.Codes, checked)
	}

	metrics.RecordCheck(result.HasCodes)
	return result, nil
}

// Report records one success/failure outcome for a (domain, code) pair.
func (s *service) Report(ctx context.Context, input ReportInput) error {
	domain := strings.TrimSpace(input.Domain)
	code := strings.TrimSpace(input.Code)
	if domain == "" || code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "domain and code are required")
	}

	store, err := s.repo.FindStoreByDomain(ctx, domain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup store")
	}

	codeRow, err := s.repo.FindCode(ctx, store.ID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "code not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup code")
	}

	if err := s.repo.RecordOutcome(ctx, codeRow.ID, input.Success); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record outcome")
	}

	metrics.RecordReport(input.Success)
	if input.Success && !codeRow.IsVerified {
		metrics.CodeVerifications.Inc()
	}
	return nil
}
