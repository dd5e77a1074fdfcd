package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"campusspot/internal/config"
	"campusspot/internal/model"
	"campusspot/internal/utils"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when the local request budget is exhausted
var ErrRateLimited = errors.New("remote suggestion rate limit exceeded")

// remoteAnalysis is the wire shape the model is asked to produce
type remoteAnalysis struct {
	Filters struct {
		MinCapacity      *float64 `json:"minCapacity"`
		Building         *string  `json:"building"`
		Amenities        []string `json:"amenities"`
		OnlyAvailableNow *bool    `json:"onlyAvailableNow"`
	} `json:"filters"`
	Reasoning string `json:"reasoning"`
}

// RemoteSuggester asks an OpenAI-compatible chat endpoint for a filter
// suggestion and falls back to ParseQueryOffline on any failure
type RemoteSuggester struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	limiter     *rate.Limiter
	cache       SuggestionCache
	logger      *zap.Logger
}

// NewRemoteSuggester creates a remote suggester. cache may be nil.
func NewRemoteSuggester(cfg *config.AIConfig, cache SuggestionCache, logger *zap.Logger) *RemoteSuggester {
	timeout := time.Duration(cfg.Timeout) * time.Second

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIBase != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.APIBase, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &RemoteSuggester{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.ChatModel,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		limiter:     limiter,
		cache:       cache,
		logger:      logger,
	}
}

// Name identifies the suggester in logs and responses
func (s *RemoteSuggester) Name() string {
	return "remote"
}

// Suggest returns the remote suggestion for text, or the offline parse when
// the remote call fails for any reason
func (s *RemoteSuggester) Suggest(ctx context.Context, text string) *model.AIAnalysisResult {
	key := CacheKey(text)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.logger.Debug("suggestion cache hit", zap.String("query", text))
			return cached
		}
	}

	start := time.Now()
	result, err := s.suggestRemote(ctx, text)
	if err != nil {
		s.logger.Warn("remote suggestion failed, switching to offline parser",
			zap.String("query", text),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return ParseQueryOffline(text)
	}

	s.logger.Debug("remote suggestion parsed",
		zap.String("query", text),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("reasoning", result.Reasoning),
	)

	if s.cache != nil {
		s.cache.Set(ctx, key, result)
	}
	return result
}

func (s *RemoteSuggester) suggestRemote(ctx context.Context, text string) (*model.AIAnalysisResult, error) {
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: suggestionPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in completion response")
	}

	content := resp.Choices[0].Message.Content
	var raw remoteAnalysis
	if err := utils.ParseAIJSON(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	return raw.toResult()
}

// toResult validates the model output against the room vocabulary
func (r *remoteAnalysis) toResult() (*model.AIAnalysisResult, error) {
	var patch model.FilterPatch

	if c := r.Filters.MinCapacity; c != nil {
		if *c < 0 || math.IsNaN(*c) || math.IsInf(*c, 0) {
			return nil, fmt.Errorf("invalid minCapacity %v", *c)
		}
		n := int(math.Ceil(*c))
		patch.MinCapacity = &n
	}

	if b := r.Filters.Building; b != nil && strings.TrimSpace(*b) != "" && !strings.EqualFold(*b, "null") {
		building, ok := utils.MatchBuilding(*b)
		if !ok {
			return nil, fmt.Errorf("unknown building %q", *b)
		}
		patch.Building = &building
	}

	if r.Filters.Amenities != nil {
		patch.Amenities = make([]model.Amenity, 0, len(r.Filters.Amenities))
		seen := make(map[model.Amenity]bool, len(r.Filters.Amenities))
		for _, name := range r.Filters.Amenities {
			a, ok := utils.MatchAmenity(name)
			if !ok {
				return nil, fmt.Errorf("unknown amenity %q", name)
			}
			if !seen[a] {
				seen[a] = true
				patch.Amenities = append(patch.Amenities, a)
			}
		}
	}

	if v := r.Filters.OnlyAvailableNow; v != nil {
		only := *v
		patch.OnlyAvailableNow = &only
	}

	reasoning := strings.TrimSpace(r.Reasoning)
	if reasoning == "" {
		return nil, fmt.Errorf("completion has no reasoning")
	}

	return &model.AIAnalysisResult{Filters: patch, Reasoning: reasoning}, nil
}

func suggestionPrompt() string {
	buildings := make([]string, len(model.Buildings))
	for i, b := range model.Buildings {
		buildings[i] = string(b)
	}
	amenities := make([]string, len(model.Amenities))
	for i, a := range model.Amenities {
		amenities[i] = string(a)
	}

	return fmt.Sprintf(`You are an assistant for a university room finding system.
The user describes what kind of room they need. Translate it into structured filter criteria.

Available Buildings: %s.
Available Amenities: %s.

Respond ONLY with a JSON object:
{
  "filters": {
    "minCapacity": number (infer from "for 5 people", "large group"; omit if not mentioned),
    "building": one of the buildings above, or null if not specified,
    "amenities": array of amenities from the list above ("presentation" -> "Projector"),
    "onlyAvailableNow": boolean (true unless the user asks for a schedule or a later time)
  },
  "reasoning": short sentence explaining what you understood
}`, strings.Join(buildings, ", "), strings.Join(amenities, ", "))
}
