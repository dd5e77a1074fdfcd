package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"campusspot/internal/config"
	"campusspot/internal/model"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// memoryCache is an in-process SuggestionCache for tests
type memoryCache struct {
	mu   sync.Mutex
	data map[string]*model.AIAnalysisResult
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]*model.AIAnalysisResult{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (*model.AIAnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.data[key]
	return r, ok
}

func (c *memoryCache) Set(ctx context.Context, key string, result *model.AIAnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = result
}

func (c *memoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// completionServer serves content as the assistant message of every chat completion
func completionServer(t *testing.T, content string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testAIConfig(baseURL string) *config.AIConfig {
	return &config.AIConfig{
		APIKey:    "sk-test",
		APIBase:   baseURL + "/v1",
		ChatModel: "test-model",
		MaxTokens: 256,
		Timeout:   5,
		Enabled:   true,
	}
}

func TestRemoteSuggester_Success(t *testing.T) {
	content := "```json\n" + `{"filters": {"minCapacity": 9.5, "building": "library", "amenities": ["AC", "outlets", "AC"], "onlyAvailableNow": false}, "reasoning": "Library room for ten"}` + "\n```"
	srv := completionServer(t, content, nil)

	s := NewRemoteSuggester(testAIConfig(srv.URL), nil, zaptest.NewLogger(t))
	got := s.Suggest(context.Background(), "big library room with ac")

	f := got.Filters
	if f.MinCapacity == nil || *f.MinCapacity != 10 {
		t.Errorf("MinCapacity = %v, want 10", f.MinCapacity)
	}
	if f.Building == nil || *f.Building != model.BuildingLibrary {
		t.Errorf("Building = %v, want Central Library", f.Building)
	}
	wantAmenities := []model.Amenity{model.AmenityAC, model.AmenityOutlets}
	if !reflect.DeepEqual(f.Amenities, wantAmenities) {
		t.Errorf("Amenities = %v, want %v", f.Amenities, wantAmenities)
	}
	if f.OnlyAvailableNow == nil || *f.OnlyAvailableNow {
		t.Errorf("OnlyAvailableNow = %v, want false", f.OnlyAvailableNow)
	}
	if got.Reasoning != "Library room for ten" {
		t.Errorf("Reasoning = %q", got.Reasoning)
	}
}

func TestRemoteSuggester_PartialFilters(t *testing.T) {
	srv := completionServer(t, `{"filters": {"building": null}, "reasoning": "Any room"}`, nil)

	s := NewRemoteSuggester(testAIConfig(srv.URL), nil, zap.NewNop())
	got := s.Suggest(context.Background(), "any room")

	want := &model.AIAnalysisResult{Reasoning: "Any room"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %+v, want %+v", got, want)
	}
}

func TestRemoteSuggester_FallsBack(t *testing.T) {
	query := "quiet room with projector for 10 people"
	offline := ParseQueryOffline(query)

	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `I think you want a quiet room`},
		{"unknown building", `{"filters": {"building": "Moon Base"}, "reasoning": "x"}`},
		{"unknown amenity", `{"filters": {"amenities": ["Jacuzzi"]}, "reasoning": "x"}`},
		{"negative capacity", `{"filters": {"minCapacity": -3}, "reasoning": "x"}`},
		{"missing reasoning", `{"filters": {"minCapacity": 3}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := completionServer(t, tt.content, nil)
			s := NewRemoteSuggester(testAIConfig(srv.URL), nil, zap.NewNop())

			if got := s.Suggest(context.Background(), query); !reflect.DeepEqual(got, offline) {
				t.Errorf("Suggest() = %+v, want offline parse %+v", got, offline)
			}
		})
	}
}

func TestRemoteSuggester_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
	}))
	defer srv.Close()

	query := "whiteboard room"
	s := NewRemoteSuggester(testAIConfig(srv.URL), nil, zap.NewNop())
	if got := s.Suggest(context.Background(), query); !reflect.DeepEqual(got, ParseQueryOffline(query)) {
		t.Errorf("Expected offline fallback on 500, got %+v", got)
	}
}

func TestRemoteSuggester_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	s := NewRemoteSuggester(testAIConfig(srv.URL), nil, zap.NewNop())
	s.timeout = 50 * time.Millisecond

	query := "computer lab"
	start := time.Now()
	got := s.Suggest(context.Background(), query)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Suggest() took %v, expected the timeout to cut it short", elapsed)
	}
	if !reflect.DeepEqual(got, ParseQueryOffline(query)) {
		t.Errorf("Expected offline fallback on timeout, got %+v", got)
	}
}

func TestRemoteSuggester_RateLimited(t *testing.T) {
	var hits int32
	srv := completionServer(t, `{"filters": {"minCapacity": 4}, "reasoning": "Small room"}`, &hits)

	cfg := testAIConfig(srv.URL)
	cfg.RateLimit = 0.001
	cfg.Burst = 1
	s := NewRemoteSuggester(cfg, nil, zap.NewNop())

	first := s.Suggest(context.Background(), "room for 4")
	if first.Reasoning != "Small room" {
		t.Fatalf("Expected remote result first, got %+v", first)
	}

	query := "room for 6"
	second := s.Suggest(context.Background(), query)
	if !reflect.DeepEqual(second, ParseQueryOffline(query)) {
		t.Errorf("Expected offline fallback once rate limited, got %+v", second)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("Expected 1 remote call, got %d", n)
	}
}

func TestRemoteSuggester_Cache(t *testing.T) {
	var hits int32
	srv := completionServer(t, `{"filters": {"amenities": ["Projector"]}, "reasoning": "Projector room"}`, &hits)

	cache := newMemoryCache()
	s := NewRemoteSuggester(testAIConfig(srv.URL), cache, zap.NewNop())

	a := s.Suggest(context.Background(), "Projector room")
	b := s.Suggest(context.Background(), "  projector   ROOM ")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Cached result differs: %+v vs %+v", a, b)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("Expected 1 remote call with cache, got %d", n)
	}
	if cache.Len() != 1 {
		t.Errorf("Expected 1 cache entry, got %d", cache.Len())
	}
}

func TestRemoteSuggester_FallbackNotCached(t *testing.T) {
	srv := completionServer(t, `not json`, nil)

	cache := newMemoryCache()
	s := NewRemoteSuggester(testAIConfig(srv.URL), cache, zap.NewNop())
	s.Suggest(context.Background(), "projector")

	if cache.Len() != 0 {
		t.Errorf("Expected offline fallback to stay out of the cache, got %d entries", cache.Len())
	}
}

func TestNewSuggester(t *testing.T) {
	logger := zap.NewNop()

	off := NewSuggester(&config.AIConfig{}, nil, logger)
	if off.Name() != "offline" {
		t.Errorf("Expected offline suggester without API key, got %s", off.Name())
	}

	on := NewSuggester(testAIConfig("http://127.0.0.1:1"), nil, logger)
	if on.Name() != "remote" {
		t.Errorf("Expected remote suggester with API key, got %s", on.Name())
	}
}

func TestNewSuggester_UnconfiguredMatchesOffline(t *testing.T) {
	s := NewSuggester(&config.AIConfig{}, nil, zap.NewNop())

	for _, q := range []string{
		"quiet room with projector for 10 people",
		"show me the full schedule for the library",
		"",
	} {
		got, err := json.Marshal(s.Suggest(context.Background(), q))
		if err != nil {
			t.Fatal(err)
		}
		want, _ := json.Marshal(ParseQueryOffline(q))
		if string(got) != string(want) {
			t.Errorf("Suggest(%q) = %s, want %s", q, got, want)
		}
	}
}
