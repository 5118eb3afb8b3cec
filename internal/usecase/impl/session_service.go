package impl

import (
	"context"
	"log/slog"
	"time"

	"mise/internal/domain/entity"
	domainerrors "mise/internal/domain/errors"
	"mise/internal/domain/gateway"
	"mise/internal/domain/repository"
	"mise/internal/domain/service"
	"mise/internal/infra/auth"
	"mise/internal/store"
	"mise/internal/usecase"
	"mise/internal/util"

	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	backend   gateway.AuthGateway
	sessions  repository.SessionRepository
	holder    *auth.SessionHolder
	inspector service.TokenInspector
	registry  *store.Registry
	logger    *slog.Logger
	now       func() time.Time
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	backend gateway.AuthGateway,
	sessions repository.SessionRepository,
	holder *auth.SessionHolder,
	inspector service.TokenInspector,
	registry *store.Registry,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		backend:   backend,
		sessions:  sessions,
		holder:    holder,
		inspector: inspector,
		registry:  registry,
		logger:    logger,
		now:       time.Now,
	}
}

// Restore loads a previously persisted session at startup and installs it as
// the active one. An expired blob is cleared rather than restored.
func (srv *sessionService) Restore(ctx context.Context) (*entity.Session, error) {
	session, err := srv.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotPersisted) {
			return nil, errors.Wrap(domainerrors.ErrSessionNotFound, "no persisted session")
		}

		return nil, errors.Wrap(err, "failed to load persisted session")
	}

	if session.Expired(srv.now()) {
		srv.logger.Info("persisted session expired, clearing", "userID", session.UserID)
		if err := srv.sessions.Clear(ctx); err != nil {
			srv.logger.Warn("failed to clear expired session", "error", err)
		}

		return nil, errors.Wrap(domainerrors.ErrSessionNotFound, "persisted session expired")
	}

	srv.holder.Set(session)
	expiresIn := "unknown"
	if !session.ExpiresAt.IsZero() {
		expiresIn = util.FormatDuration(session.ExpiresAt.Sub(srv.now()))
	}
	srv.logger.Info("session restored",
		"userID", session.UserID,
		"restaurantID", session.RestaurantID,
		"expiresIn", expiresIn)

	return session, nil
}

// Login authenticates against the backend, installs the session as the
// active one and persists it for the next start.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.Session, error) {
	session, err := srv.backend.Login(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "login failed")
	}

	// The login response does not always echo the token expiry; the token
	// itself carries it as a claim.
	subject, expiresAt, err := srv.inspector.Inspect(session.Token)
	if err != nil {
		srv.logger.Warn("issued token is not inspectable", "error", err)
	} else {
		if session.UserID == "" {
			session.UserID = subject
		}
		if session.ExpiresAt.IsZero() {
			session.ExpiresAt = expiresAt
		}
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = srv.now()
	}

	srv.holder.Set(session)

	if err := srv.sessions.Save(ctx, session); err != nil {
		// The session still works for this run; it just will not survive a
		// restart.
		srv.logger.Warn("failed to persist session", "error", err)
	}

	srv.logger.Info("logged in", "userID", session.UserID, "restaurantID", session.RestaurantID)

	return session, nil
}

// Logout clears the active and persisted session and resets all entity
// collections so in-flight results from the old session are discarded.
func (srv *sessionService) Logout(ctx context.Context) error {
	srv.holder.Clear()
	srv.registry.ResetAll()

	if err := srv.sessions.Clear(ctx); err != nil {
		return errors.Wrap(err, "failed to clear persisted session")
	}
	srv.logger.Info("logged out")

	return nil
}

// Current returns a copy of the active session, if any.
func (srv *sessionService) Current() (entity.Session, bool) {
	return srv.holder.Current()
}
