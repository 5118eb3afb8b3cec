package main

import (
	"context"
	"log/slog"
	"os"

	"mise/config"
	"mise/internal/delivery"
	"mise/internal/delivery/http"
	"mise/internal/delivery/http/router/handler"
	"mise/internal/delivery/poller"
	"mise/internal/domain/errors"
	"mise/internal/domain/gateway"
	"mise/internal/domain/service"
	"mise/internal/infra/api"
	"mise/internal/infra/auth"
	"mise/internal/infra/blobcache"
	logs "mise/internal/infra/log"
	"mise/internal/infra/persistence/sqlite"
	"mise/internal/infra/qrcode"
	"mise/internal/store"
	"mise/internal/usecase"
	"mise/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectGateway(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			restoreSession,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		sqlite.New,
		store.NewRegistry,
		auth.NewSessionHolder,
		newTokenSource,
	)
}

// newTokenSource exposes the session holder under the interface the HTTP
// client reads credentials through.
func newTokenSource(holder *auth.SessionHolder) gateway.TokenSource {
	return holder
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.NewSessionRepository,
		),
	)
}

func injectGateway() fx.Option {
	return fx.Options(
		fx.Provide(
			api.NewClient,
			api.NewAuthGateway,
			api.NewOrderGateway,
			api.NewProductGateway,
			api.NewImageGateway,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewTokenInspector,
			blobcache.New,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewOrderService,
			impl.NewProductService,
			impl.NewProfileService,
			impl.NewImageService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewOrderHandler,
			handler.NewProductHandler,
			handler.NewProfileHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				poller.New,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// restoreSession brings back the persisted session so the panel starts
// logged in when the last run's token is still valid.
func restoreSession(ctx context.Context, sessionUC usecase.SessionUsecase, logger *slog.Logger) {
	session, err := sessionUC.Restore(ctx)
	if err != nil {
		if !errors.IsSessionNotFound(err) {
			logger.Warn("Session restore failed", slog.Any("error", err))
		}

		return
	}
	logger.Info("Session restored", slog.String("restaurantID", session.RestaurantID))
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
