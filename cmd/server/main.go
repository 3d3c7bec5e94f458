package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kingstalent/poster-gateway/allowlist"
	"github.com/kingstalent/poster-gateway/idp"
	"github.com/kingstalent/poster-gateway/internal/config"
	"github.com/kingstalent/poster-gateway/server"
	"github.com/kingstalent/poster-gateway/server/authstate"
	"github.com/kingstalent/poster-gateway/session"
	"github.com/kingstalent/poster-gateway/tenants"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	registry := tenants.NewRegistry(
		&tenants.Tenant{
			ID:          "studio",
			HostPattern: c.GetStudioHost(),
			Origin:      c.GetStudioOrigin(),
			PathPrefix:  "/studio",
			CookieName:  "sb-studio",
		},
		&tenants.Tenant{
			ID:          "poster",
			HostPattern: c.GetPosterHost(),
			Origin:      c.GetPosterOrigin(),
			PathPrefix:  "/edit",
			CookieName:  "sb-poster",
		},
	)

	sessions := session.NewStore(c.GetCookieSecret(), c.GetMaxSessionAge())
	provider := idp.New(c.GetIssuerURL(), c.GetClientID(), c.GetClientSecret(), c.GetProviderTimeout())
	gate := allowlist.NewGate(allowlistRepo(c), c.GetAllowlistTimeout())
	states := authstate.NewInMemoryRepo(c.GetLoginStateTTL())

	gateway := server.New(c, registry, sessions, provider, gate, states)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: gateway}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

// allowlistRepo picks the allow-list backing store: the Supabase PostgREST
// endpoint when configured, otherwise an env-seeded in-memory list for
// development.
func allowlistRepo(c config.Config) allowlist.Repo {
	if c.GetAllowlistURL() != "" {
		return allowlist.NewRestRepo(c.GetAllowlistURL(), c.GetAllowlistAPIKey(), c.GetAllowlistTimeout())
	}
	emails := strings.Split(config.GetEnv("ALLOWED_EMAILS", ""), ",")
	log.Warn().Msg("no allow-list store configured, using in-memory list from ALLOWED_EMAILS")
	return allowlist.NewInMemoryRepo(emails...)
}

func setupLogging(c config.Config) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
