package service

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"campusspot/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("Quiet room  for 10")
	b := CacheKey("  quiet ROOM for\t10 ")
	if a != b {
		t.Errorf("Expected normalized keys to match: %s vs %s", a, b)
	}
	if CacheKey("quiet room for 11") == a {
		t.Error("Expected different queries to have different keys")
	}
	if !strings.HasPrefix(a, "campusspot:suggest:") {
		t.Errorf("Unexpected key prefix: %s", a)
	}
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	cache := NewRedisCacheWithClient(client, time.Minute, zap.NewNop())
	defer cache.Close()

	ctx := context.Background()
	key := CacheKey("projector")

	cache.Set(ctx, key, &model.AIAnalysisResult{Reasoning: "x"})
	if got, ok := cache.Get(ctx, key); ok || got != nil {
		t.Errorf("Expected miss from unreachable Redis, got %+v", got)
	}
	if err := cache.Ping(ctx); err == nil {
		t.Error("Expected Ping to fail")
	}
}

func TestSuggestionEncoding_RoundTrip(t *testing.T) {
	zero := 0
	library := model.BuildingLibrary
	off := false

	tests := []struct {
		name  string
		entry *model.AIAnalysisResult
	}{
		{
			name:  "Unset patch",
			entry: &model.AIAnalysisResult{Reasoning: "nothing to narrow"},
		},
		{
			name: "Zero values are still set",
			entry: &model.AIAnalysisResult{
				Filters: model.FilterPatch{
					MinCapacity:      &zero,
					Building:         &library,
					Amenities:        []model.Amenity{},
					OnlyAvailableNow: &off,
				},
				Reasoning: "clear amenities, show the library schedule",
			},
		},
		{
			name: "Amenities listed",
			entry: &model.AIAnalysisResult{
				Filters: model.FilterPatch{
					Amenities: []model.Amenity{model.AmenityQuietZone, model.AmenityOutlets},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := encodeSuggestion(tt.entry)
			if err != nil {
				t.Fatalf("encodeSuggestion() error = %v", err)
			}
			got, err := decodeSuggestion(data)
			if err != nil {
				t.Fatalf("decodeSuggestion(%s) error = %v", data, err)
			}
			if !reflect.DeepEqual(got, tt.entry) {
				t.Errorf("round trip = %+v, want %+v (encoded %s)", got, tt.entry, data)
			}
			if (got.Filters.Amenities == nil) != (tt.entry.Filters.Amenities == nil) {
				t.Errorf("Amenities nil = %v, want %v", got.Filters.Amenities == nil, tt.entry.Filters.Amenities == nil)
			}
		})
	}
}

func TestDecodeSuggestion_Corrupt(t *testing.T) {
	if _, err := decodeSuggestion([]byte(`{"filters": [`)); err == nil {
		t.Error("Expected error for corrupt entry")
	}
}
