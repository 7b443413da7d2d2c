package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
	"carrylink/pkg/logger"
)

type ChatUseCase struct {
	messageRepo      repository.MessageRepository
	matchRepo        repository.MatchRepository
	notificationRepo repository.NotificationRepository
	notifier         RealtimeNotifier
	limiter          RateLimiter
}

func NewChatUseCase(
	messageRepo repository.MessageRepository,
	matchRepo repository.MatchRepository,
	notificationRepo repository.NotificationRepository,
	notifier RealtimeNotifier,
	limiter RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		messageRepo:      messageRepo,
		matchRepo:        matchRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		limiter:          limiter,
	}
}

type SendMessageInput struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

// SendMessage appends a chat line to a match. The receiver is always the other
// participant; their unread counter goes up by exactly one.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, matchID string, input SendMessageInput) (*entity.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && input.ImageURL == "" {
		return nil, errors.BadRequest("Message content cannot be empty", nil)
	}

	if allowed, wait := uc.limiter.Allow(userID, "send_message"); !allowed {
		return nil, errors.TooManyRequests(fmt.Sprintf("Too many messages, retry in %s", wait.Round(time.Second)))
	}

	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !match.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this match", nil)
	}

	message := &entity.Message{
		MatchID:    matchID,
		SenderID:   userID,
		ReceiverID: match.OtherParticipant(userID),
		Content:    content,
		ImageURL:   input.ImageURL,
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	last := &entity.LastMessage{
		Content:   content,
		SenderID:  userID,
		CreatedAt: message.CreatedAt,
	}
	if err := uc.matchRepo.RecordMessage(ctx, matchID, message.ReceiverID, last); err != nil {
		// The message itself is persisted; the summary can lag behind it.
		logger.Warn("Failed to record message summary on match %s: %v", matchID, err)
	}

	uc.notifier.NotifyMessage(matchID, message)

	if !uc.notifier.IsOnline(message.ReceiverID) {
		notification := &entity.Notification{
			UserID:  message.ReceiverID,
			Type:    entity.NotificationTypeMessage,
			Title:   "New message",
			Message: truncate(content, 80),
			Link:    "/matches/" + matchID,
		}
		if err := uc.notificationRepo.Create(ctx, notification); err != nil {
			logger.Warn("Failed to create message notification for user %s: %v", message.ReceiverID, err)
		}
	}

	return message, nil
}

// GetMatchMessages returns the full conversation in chronological order.
func (uc *ChatUseCase) GetMatchMessages(ctx context.Context, userID, matchID string) ([]*entity.Message, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !match.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this match", nil)
	}

	return uc.messageRepo.ListByMatch(ctx, matchID)
}

// MarkMessagesAsRead zeroes the reader's unread counter and flips the read
// flag on every message addressed to them. Idempotent: calling it again is a
// no-op that reports zero flips.
func (uc *ChatUseCase) MarkMessagesAsRead(ctx context.Context, userID, matchID string) (int, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return 0, err
	}

	if !match.HasParticipant(userID) {
		return 0, errors.Forbidden("You are not a participant of this match", nil)
	}

	if err := uc.matchRepo.ResetUnread(ctx, matchID, userID); err != nil {
		return 0, err
	}

	count, err := uc.messageRepo.MarkRead(ctx, matchID, userID)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		uc.notifier.NotifyRead(matchID, userID, count)
	}

	return count, nil
}

// SubscribeMessages streams the conversation on every change until the context
// is cancelled.
func (uc *ChatUseCase) SubscribeMessages(ctx context.Context, userID, matchID string, fn func([]*entity.Message)) error {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return err
	}

	if !match.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this match", nil)
	}

	return uc.messageRepo.Subscribe(ctx, matchID, fn)
}

// truncate shortens s to at most max runes, never splitting a multi-byte
// character.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
