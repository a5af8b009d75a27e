// Package app assembles the server from its parts.
package app

import (
	"context"
	"fmt"
	"log"

	"feastbid/internal/bid"
	"feastbid/internal/config"
	"feastbid/internal/gateway/handler"
	"feastbid/internal/gateway/middleware"
	"feastbid/internal/gateway/server"
	"feastbid/internal/guardrail"
	"feastbid/internal/llm"
	"feastbid/internal/orderflow"
)

type App struct {
	server *server.Server
	llm    llm.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("llm client: %s", client.Name())

	guard := guardrail.New(cfg.GuardrailDebug, cfg.GuardrailEnforce)
	gen := bid.NewGenerator(client, cfg.BidCacheEntries, cfg.BidCacheTTL)
	flow := orderflow.New(gen, client, guard)

	h := handler.New(flow)
	srv := server.New(cfg.Port, middleware.CORS(h.Routes()))

	return &App{
		server: srv,
		llm:    client,
	}, nil
}

func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	switch {
	case cfg.UseFakeLLM:
		return llm.NewFakeClient(), nil
	case cfg.GeminiAPIKey == "":
		// Keep the screen flow alive; generation and negotiation surface a
		// remediation message instead.
		log.Println("GEMINI_API_KEY is not set; bid generation and negotiation are disabled")
		return llm.Disabled{}, nil
	default:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMRPS, cfg.LLMBurst)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize llm client: %w", err)
		}
		return client, nil
	}
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.llm.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
