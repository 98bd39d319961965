// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codegen-agent-gateway/internal/config"
	"codegen-agent-gateway/internal/infra/adapters/codegen"
	"codegen-agent-gateway/internal/infra/logging"
	"codegen-agent-gateway/internal/infra/metrics"
	"codegen-agent-gateway/internal/infra/web"
	"codegen-agent-gateway/internal/usecase"
)

// Overridden via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "developer mode (console logs, no prompt redaction)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Codegen client ----
	agent, err := codegen.NewClient(
		cfg.Agent.OrgID,
		cfg.Agent.APIToken,
		cfg.Agent.BaseURL,
		time.Duration(cfg.Agent.HTTPTimeoutSec)*time.Second,
		logger,
	)
	if err != nil {
		log.Fatalf("codegen client: %v", err)
	}
	logger.Info().Str("base_url", cfg.Agent.BaseURL).Str("org_id", cfg.Agent.OrgID).Msg("codegen client ready")

	// ---- Use case + HTTP surface ----
	runUC := usecase.NewAgentRunUseCase(
		agent,
		time.Duration(cfg.Agent.PollTimeoutSec)*time.Second,
		time.Duration(cfg.Agent.PollIntervalSec)*time.Second,
		logger,
	)
	srv := web.NewServer(runUC, cfg.Auth.APIKey, cfg.Runtime.Dev, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Routes(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("gateway listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
