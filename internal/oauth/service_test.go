package oauth

import (
	"context"
	"errors"
	"testing"

	"github.com/HUNTSTAR747/referred-space-server/internal/creators"
	"github.com/HUNTSTAR747/referred-space-server/pkg/db/models"
	pkgerrors "github.com/HUNTSTAR747/referred-space-server/pkg/errors"
	"github.com/HUNTSTAR747/referred-space-server/pkg/instagram"
	"github.com/google/uuid"
)

type stubExchanger struct {
	token      *instagram.Token
	profile    *instagram.Profile
	tokenErr   error
	profileErr error
}

func (s stubExchanger) AuthorizeURL() string {
	return "https://api.instagram.com/oauth/authorize?client_id=x"
}

func (s stubExchanger) ExchangeCode(ctx context.Context, code string) (*instagram.Token, error) {
	if s.tokenErr != nil {
		return nil, s.tokenErr
	}
	return s.token, nil
}

func (s stubExchanger) FetchProfile(ctx context.Context, accessToken string) (*instagram.Profile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profile, nil
}

type stubUpserter struct {
	upserted []creators.UpsertCreatorDTO
	creator  *models.Creator
	err      error
}

func (s *stubUpserter) Upsert(ctx context.Context, dto creators.UpsertCreatorDTO) (*models.Creator, error) {
	s.upserted = append(s.upserted, dto)
	if s.err != nil {
		return nil, s.err
	}
	return s.creator, nil
}

func TestHandleCallbackLinksCreator(t *testing.T) {
	creatorID := uuid.New()
	repo := &stubUpserter{creator: &models.Creator{
		ID:              creatorID,
		InstagramID:     "17841400000000000",
		InstagramHandle: "jane",
	}}
	svc, err := NewService(stubExchanger{
		token:   &instagram.Token{AccessToken: "tok"},
		profile: &instagram.Profile{ID: "17841400000000000", Username: "jane"},
	}, repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	sess, err := svc.HandleCallback(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("callback: %v", err)
	}

	if sess.CreatorID != creatorID || sess.InstagramHandle != "jane" {
		t.Fatalf("unexpected session %+v", sess)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.upserted))
	}
	dto := repo.upserted[0]
	if dto.InstagramID != "17841400000000000" || dto.InstagramHandle != "jane" || dto.AccessToken != "tok" {
		t.Fatalf("unexpected upsert dto %+v", dto)
	}
}

func TestHandleCallbackTokenFailureIsDependencyError(t *testing.T) {
	svc, err := NewService(stubExchanger{tokenErr: errors.New("invalid code")}, &stubUpserter{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.HandleCallback(context.Background(), "expired")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if typed.Message() != "authentication failed" {
		t.Fatalf("upstream detail must not leak, got %q", typed.Message())
	}
}

func TestHandleCallbackProfileFailureIsDependencyError(t *testing.T) {
	svc, err := NewService(stubExchanger{
		token:      &instagram.Token{AccessToken: "tok"},
		profileErr: errors.New("token rejected"),
	}, &stubUpserter{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.HandleCallback(context.Background(), "abc123")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewServiceRequiresClient(t *testing.T) {
	if _, err := NewService(nil, &stubUpserter{}, nil); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
