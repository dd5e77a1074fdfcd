package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"campusspot/internal/model"
	"campusspot/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// notifyChance is the probability that a poll announces an event
const notifyChance = 0.3

// Random is the randomness a NotificationCenter draws from.
// *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// NotificationCenter announces subscribed campus events.
// It is safe for concurrent use.
type NotificationCenter struct {
	mu            sync.Mutex
	events        repository.EventRepository
	subscriptions map[model.EventCategory]bool
	notifications []model.Notification
	rand          Random
	now           func() time.Time
	logger        *zap.Logger
}

// NewNotificationCenter creates a center subscribed to career fairs and
// academic deadlines. rng and now may be nil.
func NewNotificationCenter(events repository.EventRepository, rng Random, now func() time.Time, logger *zap.Logger) *NotificationCenter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &NotificationCenter{
		events: events,
		subscriptions: map[model.EventCategory]bool{
			model.CategoryCareer:   true,
			model.CategoryAcademic: true,
		},
		rand:   rng,
		now:    now,
		logger: logger,
	}
}

// Subscriptions returns the subscribed categories in display order
func (c *NotificationCenter) Subscriptions() []model.EventCategory {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.EventCategory, 0, len(c.subscriptions))
	for _, cat := range model.EventCategories {
		if c.subscriptions[cat] {
			out = append(out, cat)
		}
	}
	return out
}

// Toggle flips the subscription of category and returns the new state
func (c *NotificationCenter) Toggle(category model.EventCategory) (bool, error) {
	if !category.Valid() {
		return false, fmt.Errorf("unknown event category %q", category)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.subscriptions[category] = !c.subscriptions[category]
	if !c.subscriptions[category] {
		delete(c.subscriptions, category)
		return false, nil
	}
	return true, nil
}

// Poll may announce one random subscribed event not announced yet.
// It returns the new notification, or nil when nothing was announced.
func (c *NotificationCenter) Poll(ctx context.Context) (*model.Notification, error) {
	events, err := c.events.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rand.Float64() >= notifyChance {
		return nil, nil
	}

	announced := make(map[string]bool, len(c.notifications))
	for _, n := range c.notifications {
		announced[n.EventID] = true
	}

	var candidates []model.UniEvent
	for _, e := range events {
		if c.subscriptions[e.Category] && !announced[e.ID] {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	event := candidates[c.rand.Intn(len(candidates))]
	n := model.Notification{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		Title:     "Upcoming: " + event.Title,
		Message:   fmt.Sprintf("%s at %s", event.Description, event.Location),
		Timestamp: c.now(),
		Category:  event.Category,
	}
	c.notifications = append([]model.Notification{n}, c.notifications...)

	c.logger.Info("event notification created",
		zap.String("event_id", event.ID),
		zap.String("category", string(event.Category)),
	)
	return &n, nil
}

// Run polls every interval until ctx is cancelled
func (c *NotificationCenter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.Poll(ctx); err != nil {
				c.logger.Warn("notification poll failed", zap.Error(err))
			}
		}
	}
}

// List returns notifications newest first with the unread count
func (c *NotificationCenter) List() model.NotificationList {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := model.NotificationList{Notifications: append([]model.Notification{}, c.notifications...)}
	for _, n := range c.notifications {
		if !n.IsRead {
			out.UnreadCount++
		}
	}
	return out
}

// MarkRead marks one notification read. It reports whether id was found.
func (c *NotificationCenter) MarkRead(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.notifications {
		if c.notifications[i].ID == id {
			c.notifications[i].IsRead = true
			return true
		}
	}
	return false
}

// ClearAll removes every notification
func (c *NotificationCenter) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.notifications = nil
}

// UnreadCount returns the number of unread notifications
func (c *NotificationCenter) UnreadCount() int {
	return c.List().UnreadCount
}
