package registry

import (
	"context"
	"testing"

	"github.com/HUNTSTAR747/referred-space-server/pkg/db/models"
	pkgerrors "github.com/HUNTSTAR747/referred-space-server/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubRepo struct {
	store *models.Store
	codes map[string]*models.DiscountCode

	storedCodes  []string
	linkedPairs  [][2]uuid.UUID
	outcomes     []bool
	listStores   []models.Store
	listCodes    []models.DiscountCode
	storeMissing bool
}

func (s *stubRepo) UpsertStore(ctx context.Context, domain string) (*models.Store, error) {
	if s.store == nil {
		s.store = &models.Store{ID: uuid.New(), Domain: domain}
	}
	return s.store, nil
}

func (s *stubRepo) FindStoreByDomain(ctx context.Context, domain string) (*models.Store, error) {
	if s.storeMissing || s.store == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.store, nil
}

func (s *stubRepo) UpsertCode(ctx context.Context, storeID uuid.UUID, code string) error {
	if s.codes == nil {
		s.codes = map[string]*models.DiscountCode{}
	}
	if _, ok := s.codes[code]; !ok {
		s.codes[code] = &models.DiscountCode{ID: uuid.New(), StoreID: storeID, Code: code}
	}
	s.storedCodes = append(s.storedCodes, code)
	return nil
}

func (s *stubRepo) FindCode(ctx context.Context, storeID uuid.UUID, code string) (*models.DiscountCode, error) {
	if row, ok := s.codes[code]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) UpsertCreatorCode(ctx context.Context, creatorID, codeID uuid.UUID) error {
	s.linkedPairs = append(s.linkedPairs, [2]uuid.UUID{creatorID, codeID})
	return nil
}

func (s *stubRepo) ListStores(ctx context.Context) ([]models.Store, error) {
	return s.listStores, nil
}

func (s *stubRepo) ListCodes(ctx context.Context, storeID uuid.UUID) ([]models.DiscountCode, error) {
	return s.listCodes, nil
}

func (s *stubRepo) RecordOutcome(ctx context.Context, codeID uuid.UUID, success bool) error {
	s.outcomes = append(s.outcomes, success)
	return nil
}

type stubCreators struct {
	byHandle map[string]*models.Creator
}

func (s stubCreators) FindByHandle(ctx context.Context, handle string) (*models.Creator, error) {
	if c, ok := s.byHandle[handle]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestService(t *testing.T, repo *stubRepo, creators stubCreators) Service {
	t.Helper()
	svc, err := NewService(repo, creators, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSubmitStoresCodesAndLinksCreators(t *testing.T) {
	repo := &stubRepo{}
	creatorID := uuid.New()
	svc := newTestService(t, repo, stubCreators{byHandle: map[string]*models.Creator{
		"jane": {ID: creatorID, InstagramHandle: "jane"},
	}})

	result, err := svc.Submit(context.Background(), SubmitInput{
		Domain:         "shop.example.com",
		Codes:          []string{"JANE10", "JANE20"},
		CreatorHandles: []string{"jane"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if result.Store.Domain != "shop.example.com" {
		t.Fatalf("expected store domain, got %q", result.Store.Domain)
	}
	if !result.Success || result.Message == "" {
		t.Fatalf("expected success result with message, got %+v", result)
	}
	if len(result.Report.StoredCodes) != 2 {
		t.Fatalf("expected 2 stored codes, got %d", len(result.Report.StoredCodes))
	}
	if len(result.Report.Links) != 2 {
		t.Fatalf("expected 2 link outcomes, got %d", len(result.Report.Links))
	}
	for _, link := range result.Report.Links {
		if link.Status != LinkStatusLinked {
			t.Fatalf("expected linked status, got %q", link.Status)
		}
	}
	if len(repo.linkedPairs) != 2 {
		t.Fatalf("expected 2 creator_code rows, got %d", len(repo.linkedPairs))
	}
}

func TestSubmitUnknownCreatorReportsWithoutFailing(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(t, repo, stubCreators{})

	result, err := svc.Submit(context.Background(), SubmitInput{
		Domain:         "shop.example.com",
		Codes:          []string{"NOPE5"},
		CreatorHandles: []string{"ghost"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(result.Report.StoredCodes) != 1 {
		t.Fatalf("codes should still be stored, got %d", len(result.Report.StoredCodes))
	}
	if len(result.Report.Links) != 1 || result.Report.Links[0].Status != LinkStatusUnknownCreator {
		t.Fatalf("expected unknown_creator outcome, got %+v", result.Report.Links)
	}
	if len(repo.linkedPairs) != 0 {
		t.Fatalf("no creator_code rows should exist, got %d", len(repo.linkedPairs))
	}
}

func TestSubmitResubmitIsIdempotent(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(t, repo, stubCreators{})

	input := SubmitInput{Domain: "shop.example.com", Codes: []string{"SAVE10"}}
	first, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if first.Store.ID != second.Store.ID {
		t.Fatalf("resubmit should reuse the store row")
	}
	if len(repo.codes) != 1 {
		t.Fatalf("expected one code row, got %d", len(repo.codes))
	}
}

func TestSubmitRequiresDomain(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, stubCreators{})

	_, err := svc.Submit(context.Background(), SubmitInput{Codes: []string{"X"}})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckUnknownDomainIsMissNotError(t *testing.T) {
	svc := newTestService(t, &stubRepo{storeMissing: true}, stubCreators{})

	result, err := svc.Check(context.Background(), "nowhere.example.com")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.HasCodes {
		t.Fatalf("expected hasCodes false")
	}
	if len(result.Codes) != 0 {
		t.Fatalf("expected no codes, got %d", len(result.Codes))
	}
}

func TestCheckReturnsCodesWithCreators(t *testing.T) {
	storeID := uuid.New()
	repo := &stubRepo{
		store: &models.Store{ID: storeID, Domain: "shop.example.com"},
		listCodes: []models.DiscountCode{
			{
				ID:           uuid.New(),
				StoreID:      storeID,
				Code:         "JANE10",
				IsVerified:   true,
				SuccessCount: 3,
				CreatorCodes: []models.CreatorCode{
					{Creator: &models.Creator{InstagramHandle: "jane"}},
				},
			},
		},
	}
	svc := newTestService(t, repo, stubCreators{})

	result, err := svc.Check(context.Background(), "shop.example.com")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !result.HasCodes || len(result.Codes) != 1 {
		t.Fatalf("expected one code, got %+v", result)
	}
	code := result.Codes[0]
	if code.Code != "JANE10" || !code.Verified || code.SuccessCount != 3 {
		t.Fatalf("unexpected code payload: %+v", code)
	}
	if len(code.Creators) != 1 || code.Creators[0] != "jane" {
		t.Fatalf("expected creator handle, got %v", code.Creators)
	}
}

func TestReportUnknownStoreIsNotFound(t *testing.T) {
	svc := newTestService(t, &stubRepo{storeMissing: true}, stubCreators{})

	err := svc.Report(context.Background(), ReportInput{Domain: "nowhere.example.com", Code: "X", Success: true})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReportUnknownCodeIsNotFound(t *testing.T) {
	repo := &stubRepo{store: &models.Store{ID: uuid.New(), Domain: "shop.example.com"}}
	svc := newTestService(t, repo, stubCreators{})

	err := svc.Report(context.Background(), ReportInput{Domain: "shop.example.com", Code: "MISSING", Success: false})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReportRecordsOutcome(t *testing.T) {
	storeID := uuid.New()
	repo := &stubRepo{
		store: &models.Store{ID: storeID, Domain: "shop.example.com"},
		codes: map[string]*models.DiscountCode{
			"SAVE10": {ID: uuid.New(), StoreID: storeID, Code: "SAVE10"},
		},
	}
	svc := newTestService(t, repo, stubCreators{})

	if err := svc.Report(context.Background(), ReportInput{Domain: "shop.example.com", Code: "SAVE10", Success: true}); err != nil {
		t.Fatalf("report success: %v", err)
	}
	if err := svc.Report(context.Background(), ReportInput{Domain: "shop.example.com", Code: "SAVE10", Success: false}); err != nil {
		t.Fatalf("report failure: %v", err)
	}

	if len(repo.outcomes) != 2 || !repo.outcomes[0] || repo.outcomes[1] {
		t.Fatalf("expected [true false] outcomes, got %v", repo.outcomes)
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, stubCreators{}, nil); err == nil {
		t.Fatalf("expected error for nil repo")
	}
	var noCreators creatorFinder
	if _, err := NewService(&stubRepo{}, noCreators, nil); err == nil {
		t.Fatalf("expected error for nil creators")
	}
}
