package service

import (
	"context"

	"campusspot/internal/config"
	"campusspot/internal/model"

	"go.uber.org/zap"
)

// Suggester turns free text into a filter suggestion.
// Implementations never fail: errors degrade to the offline parser.
type Suggester interface {
	Suggest(ctx context.Context, text string) *model.AIAnalysisResult

	// Name identifies the active implementation ("remote" or "offline")
	Name() string
}

// NewSuggester picks the remote suggester when an API key is configured and
// the offline rule parser otherwise. cache may be nil.
func NewSuggester(cfg *config.AIConfig, cache SuggestionCache, logger *zap.Logger) Suggester {
	if !cfg.Enabled {
		logger.Info("remote suggestions disabled, using offline rule parser")
		return NewLocalRuleParser()
	}

	logger.Info("remote suggestions enabled",
		zap.String("api_base", cfg.APIBase),
		zap.String("model", cfg.ChatModel),
		zap.Int("timeout_s", cfg.Timeout),
		zap.Float64("rate_limit", cfg.RateLimit),
		zap.Bool("cache", cache != nil),
	)
	return NewRemoteSuggester(cfg, cache, logger)
}

var (
	_ Suggester = (*LocalRuleParser)(nil)
	_ Suggester = (*RemoteSuggester)(nil)
)
