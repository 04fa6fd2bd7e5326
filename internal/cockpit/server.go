// Package cockpit assembles the assistant server: modules, router and the
// HTTP lifecycle.
package cockpit

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/colonyops/cockpit/internal/cockpit/config"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant"
	"github.com/colonyops/cockpit/internal/cockpit/service/llm"
	"github.com/colonyops/cockpit/pkg/logger"
)

const shutdownGrace = 10 * time.Second

type apiServer struct {
	engine *gin.Engine
	addr   string

	llmModule       *llm.Module
	assistantModule *assistant.Module
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gin.SetMode(cfg.ServingOptions.Mode)

	// Initialize LLM module.
	llmCfg := &llm.Config{ModelOptions: cfg.ModelOptions}
	llmModule := llmCfg.Complete().New()
	logger.Info("LLM module initialized successfully")

	// Initialize Assistant module (Config → Complete → New).
	assistantCfg := &assistant.Config{
		AssistantOptions: cfg.AssistantOptions,
		StoreOptions:     cfg.StoreOptions,
	}
	assistantModule, err := assistantCfg.Complete().New(context.Background(), assistant.Dependencies{
		LLM: llmModule,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Assistant module: %w", err)
	}
	logger.Info("Assistant module initialized successfully")

	return &apiServer{
		engine:          gin.New(),
		addr:            cfg.ServingOptions.Addr(),
		llmModule:       llmModule,
		assistantModule: assistantModule,
	}, nil
}

func (s *apiServer) PrepareRun(cfg *config.Config) preparedAPIServer {
	initRouter(s.engine, &routerDeps{
		assistantModule: s.assistantModule,
		accessTokens:    cfg.AssistantOptions.AccessTokens,
	})
	return preparedAPIServer{s}
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests and closes
// the stores.
func (s preparedAPIServer) Run() error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[Cockpit] listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.assistantModule.Close()
		return err
	case <-ctx.Done():
	}

	logger.Info("[Cockpit] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("[Cockpit] shutdown: %v", err)
	}
	return s.assistantModule.Close()
}
