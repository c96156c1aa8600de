package oauth

import (
	"context"
	"fmt"

	"github.com/HUNTSTAR747/referred-space-server/internal/creators"
	"github.com/HUNTSTAR747/referred-space-server/internal/sessions"
	"github.com/HUNTSTAR747/referred-space-server/pkg/db/models"
	pkgerrors "github.com/HUNTSTAR747/referred-space-server/pkg/errors"
	"github.com/HUNTSTAR747/referred-space-server/pkg/instagram"
	"github.com/HUNTSTAR747/referred-space-server/pkg/logger"
)

const authFailedMessage = "authentication failed"

// Service runs the one-shot code exchange: token, profile, creator upsert.
type Service interface {
	AuthorizeURL() string
	HandleCallback(ctx context.Context, code string) (*sessions.CreatorSession, error)
}

type exchanger interface {
	AuthorizeURL() string
	ExchangeCode(ctx context.Context, code string) (*instagram.Token, error)
	FetchProfile(ctx context.Context, accessToken string) (*instagram.Profile, error)
}

type creatorUpserter interface {
	Upsert(ctx context.Context, dto creators.UpsertCreatorDTO) (*models.Creator, error)
}

type service struct {
	ig       exchanger
	creators creatorUpserter
	logger   *logger.Logger
}

// NewService wires the Instagram client and creator repo into the exchange.
func NewService(ig exchanger, repo creatorUpserter, logg *logger.Logger) (Service, error) {
	if ig == nil {
		return nil, fmt.Errorf("instagram client is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("creators repository is required")
	}
	return &service{ig: ig, creators: repo, logger: logg}, nil
}

func (s *service) AuthorizeURL() string {
	return s.ig.AuthorizeURL()
}

// HandleCallback exchanges the authorization code, fetches the profile, and
// persists the creator identity. Upstream failures surface as a generic
// authentication error; the underlying cause is logged, not returned.
func (s *service) HandleCallback(ctx context.Context, code string) (*sessions.CreatorSession, error) {
	token, err := s.ig.ExchangeCode(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, authFailedMessage)
	}

	profile, err := s.ig.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, authFailedMessage)
	}

	creator, err := s.creators.Upsert(ctx, creators.UpsertCreatorDTO{
		InstagramID:     profile.ID,
		InstagramHandle: profile.Username,
		AccessToken:     token.AccessToken,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, authFailedMessage)
	}

	if s.logger != nil {
		lctx := s.logger.WithCreatorID(ctx, creator.ID.String())
		lctx = s.logger.WithField(lctx, "handle", creator.InstagramHandle)
		s.logger.Info(lctx, "creator linked")
	}

	return &sessions.CreatorSession{
		CreatorID:       creator.ID,
		InstagramHandle: creator.InstagramHandle,
	}, nil
}
