package usecase

import (
	"time"

	"carrylink/internal/domain/entity"
)

// RealtimeNotifier pushes live events to connected clients. Implemented by the
// websocket layer; everything here is fire-and-forget.
type RealtimeNotifier interface {
	NotifyMatch(userID string, match *entity.Match)
	NotifyMessage(matchID string, message *entity.Message)
	NotifyRead(matchID, readerID string, count int)
	IsOnline(userID string) bool
}

// RateLimiter gates per-user actions. Implemented by the token bucket in
// infrastructure/ratelimit.
type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}
