package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/CETEN-BDE/bot-discord/internal/auth/policy"
	"github.com/CETEN-BDE/bot-discord/internal/auth/provider/google"
	"github.com/CETEN-BDE/bot-discord/internal/config"
	"github.com/CETEN-BDE/bot-discord/internal/discord"
	"github.com/CETEN-BDE/bot-discord/internal/identity"
	"github.com/CETEN-BDE/bot-discord/internal/logger"
	"github.com/CETEN-BDE/bot-discord/internal/roles"
	"github.com/CETEN-BDE/bot-discord/internal/verify"
)

// App hosts the two halves of the bot: the gateway session and the
// HTTP callback server.
type App struct {
	httpServer *http.Server
	discord    *discord.Client
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	client, err := discord.NewClient(cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	googleProvider, err := google.New(
		ctx,
		cfg.SSOClientID,
		cfg.SSOClientSecret,
		cfg.SSOCallbackURL,
	)
	if err != nil {
		return nil, err
	}

	// The identity record table is injected, not a package singleton:
	// it is advisory process-memory state, and a durable backend only
	// needs another identity.Store implementation here.
	store := identity.NewInMemory()
	policyResolver := policy.NewCanonical(cfg.DomainLabels())
	reconciler := roles.NewReconciler(client, cfg.RoleMapping(), cfg.VerifiedRoleID)

	flow := verify.NewController(
		googleProvider,
		policyResolver,
		reconciler,
		store,
		cfg.AppURL,
	)

	discord.NewDispatcher(client, flow).Attach(client.Session())

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: setupHTTP(flow),
	}

	return &App{
		httpServer: server,
		discord:    client,
	}, nil
}

func (a *App) Run() error {
	if err := a.discord.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}

	logger.Info("discord gateway connected", nil)

	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return a.discord.Close()
}
