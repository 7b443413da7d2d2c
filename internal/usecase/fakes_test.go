package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"carrylink/internal/domain/entity"
	"carrylink/pkg/errors"
)

// In-memory stand-ins for the Firestore repositories. They mirror the write
// stamps the real adapters apply (IDs, timestamps, default status) so the use
// cases behave identically on top of them.

type fakeListingRepo struct {
	listings map[string]*entity.Listing
	seq      int

	failMarkMatched bool
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[string]*entity.Listing{}}
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		r.seq++
		listing.ID = fmt.Sprintf("listing-%d", r.seq)
	}
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	listing.Views = 0
	listing.Matches = 0
	listing.Status = entity.ListingStatusActive

	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	copied := *listing
	return &copied, nil
}

func (r *fakeListingRepo) ListByOwner(ctx context.Context, userID string) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, listing := range r.listings {
		if listing.UserID == userID {
			copied := *listing
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeListingRepo) ListActive(ctx context.Context, listingType string, limit int) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, listing := range r.listings {
		if listing.Status != entity.ListingStatusActive {
			continue
		}
		if listingType != "" && listing.Type != listingType {
			continue
		}
		copied := *listing
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeListingRepo) ListActiveByRoute(ctx context.Context, listingType, origin, destination string, limit int) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, listing := range r.listings {
		if listing.Type != listingType || listing.Status != entity.ListingStatusActive {
			continue
		}
		if listing.Origin != origin || listing.Destination != destination {
			continue
		}
		copied := *listing
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeListingRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	for path, value := range fields {
		switch path {
		case "origin":
			listing.Origin = value.(string)
		case "destination":
			listing.Destination = value.(string)
		case "departureDate":
			listing.DepartureDate = value.(time.Time)
		case "neededByDate":
			listing.NeededByDate = value.(time.Time)
		case "flexibleDates":
			listing.FlexibleDates = value.(bool)
		case "price":
			listing.Price = value.(float64)
		case "priceCurrency":
			listing.PriceCurrency = value.(string)
		case "negotiable":
			listing.Negotiable = value.(bool)
		case "status":
			listing.Status = value.(string)
		case "sender":
			listing.Sender = value.(*entity.SenderDetails)
		case "traveler":
			listing.Traveler = value.(*entity.TravelerDetails)
		}
	}
	listing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeListingRepo) SoftDelete(ctx context.Context, id string) error {
	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.Status = entity.ListingStatusCancelled
	listing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeListingRepo) IncrementViews(ctx context.Context, id string) error {
	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.Views++
	return nil
}

func (r *fakeListingRepo) MarkMatched(ctx context.Context, id string) error {
	if r.failMarkMatched {
		return errors.Internal("simulated write failure", nil)
	}
	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.Status = entity.ListingStatusMatched
	listing.Matches++
	listing.UpdatedAt = time.Now()
	return nil
}

type fakeMatchRepo struct {
	matches map[string]*entity.Match
	seq     int

	failRecordMessage bool
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[string]*entity.Match{}}
}

func (r *fakeMatchRepo) Create(ctx context.Context, match *entity.Match) error {
	if match.ID == "" {
		r.seq++
		match.ID = fmt.Sprintf("match-%d", r.seq)
	}
	now := time.Now()
	match.CreatedAt = now
	match.UpdatedAt = now

	copied := *match
	r.matches[match.ID] = &copied
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, errors.NotFound("Match", nil)
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) GetByListingPair(ctx context.Context, senderListingID, travelerListingID string) (*entity.Match, error) {
	for _, match := range r.matches {
		if match.SenderListingID == senderListingID && match.TravelerListingID == travelerListingID {
			copied := *match
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Match", nil)
}

func (r *fakeMatchRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Match, error) {
	var out []*entity.Match
	for _, match := range r.matches {
		if match.HasParticipant(userID) {
			copied := *match
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortKey().After(out[j].SortKey()) })
	return out, nil
}

func (r *fakeMatchRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	match, ok := r.matches[id]
	if !ok {
		return errors.NotFound("Match", nil)
	}
	for path, value := range fields {
		switch path {
		case "status":
			match.Status = value.(string)
		case "meetingLocation":
			match.MeetingLocation = value.(string)
		case "meetingDate":
			match.MeetingDate = value.(time.Time)
		case "meetingConfirmed":
			match.MeetingConfirmed = value.(bool)
		case "agreedPrice":
			match.AgreedPrice = value.(float64)
		case "paymentStatus":
			match.PaymentStatus = value.(string)
		}
	}
	match.UpdatedAt = time.Now()
	return nil
}

func (r *fakeMatchRepo) RecordMessage(ctx context.Context, matchID, receiverID string, last *entity.LastMessage) error {
	if r.failRecordMessage {
		return errors.Internal("simulated write failure", nil)
	}
	match, ok := r.matches[matchID]
	if !ok {
		return errors.NotFound("Match", nil)
	}
	if match.UnreadCount == nil {
		match.UnreadCount = map[string]int{}
	}
	match.UnreadCount[receiverID]++
	match.LastMessage = last
	match.LastMessageAt = last.CreatedAt
	match.UpdatedAt = time.Now()
	return nil
}

func (r *fakeMatchRepo) ResetUnread(ctx context.Context, matchID, userID string) error {
	match, ok := r.matches[matchID]
	if !ok {
		return errors.NotFound("Match", nil)
	}
	if match.UnreadCount == nil {
		match.UnreadCount = map[string]int{}
	}
	match.UnreadCount[userID] = 0
	return nil
}

func (r *fakeMatchRepo) SubscribeByUser(ctx context.Context, userID string, fn func([]*entity.Match)) error {
	matches, _ := r.ListByUser(ctx, userID)
	fn(matches)
	<-ctx.Done()
	return nil
}

type fakeMessageRepo struct {
	messages []*entity.Message
	seq      int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.seq++
	if message.ID == "" {
		message.ID = fmt.Sprintf("message-%d", r.seq)
	}
	message.Read = false
	// Strictly increasing stamps keep the conversation order deterministic.
	message.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)

	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) ListByMatch(ctx context.Context, matchID string) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, message := range r.messages {
		if message.MatchID == matchID {
			copied := *message
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(ctx context.Context, matchID, userID string) (int, error) {
	count := 0
	for _, message := range r.messages {
		if message.MatchID == matchID && message.ReceiverID == userID && !message.Read {
			message.Read = true
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) Subscribe(ctx context.Context, matchID string, fn func([]*entity.Message)) error {
	messages, _ := r.ListByMatch(ctx, matchID)
	fn(messages)
	<-ctx.Done()
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	if user.FullName != "" {
		stored.FullName = user.FullName
	}
	if user.Phone != "" {
		stored.Phone = user.Phone
	}
	if user.UserType != "" {
		stored.UserType = user.UserType
	}
	if user.Country != "" {
		stored.Country = user.Country
	}
	if user.City != "" {
		stored.City = user.City
	}
	if user.PhotoURL != "" {
		stored.PhotoURL = user.PhotoURL
	}
	stored.LastActive = time.Now()
	return nil
}

func (r *fakeUserRepo) UpdateStats(ctx context.Context, userID string, rating float64, totalReviews int) error {
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Rating = rating
	user.TotalReviews = totalReviews
	return nil
}

type fakeReviewRepo struct {
	reviews []*entity.Review
	seq     int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.seq++
	if review.ID == "" {
		review.ID = fmt.Sprintf("review-%d", r.seq)
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	copied := *review
	r.reviews = append(r.reviews, &copied)
	return nil
}

func (r *fakeReviewRepo) GetByMatchAndReviewer(ctx context.Context, matchID, reviewerID string) (*entity.Review, error) {
	for _, review := range r.reviews {
		if review.MatchID == matchID && review.ReviewerID == reviewerID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *fakeReviewRepo) ListByReviewee(ctx context.Context, userID string, limit int) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, review := range r.reviews {
		if review.RevieweeID == userID {
			copied := *review
			out = append(out, &copied)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
	seq           int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	r.seq++
	if notification.ID == "" {
		notification.ID = fmt.Sprintf("notification-%d", r.seq)
	}
	notification.Read = false
	notification.CreatedAt = time.Now()

	copied := *notification
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	for _, notification := range r.notifications {
		if notification.ID == id {
			copied := *notification
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			copied := *notification
			out = append(out, &copied)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	for _, notification := range r.notifications {
		if notification.ID == id {
			notification.Read = true
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, notification := range r.notifications {
		if notification.UserID == userID && !notification.Read {
			notification.Read = true
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) forUser(userID string) []*entity.Notification {
	var out []*entity.Notification
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			out = append(out, notification)
		}
	}
	return out
}

// fakeNotifier records pushes; online holds the user IDs considered connected.
type fakeNotifier struct {
	matchPushes   map[string]int
	messagePushes []*entity.Message
	readPushes    []string
	online        map[string]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		matchPushes: map[string]int{},
		online:      map[string]bool{},
	}
}

func (n *fakeNotifier) NotifyMatch(userID string, match *entity.Match) {
	n.matchPushes[userID]++
}

func (n *fakeNotifier) NotifyMessage(matchID string, message *entity.Message) {
	n.messagePushes = append(n.messagePushes, message)
}

func (n *fakeNotifier) NotifyRead(matchID, readerID string, count int) {
	n.readPushes = append(n.readPushes, readerID)
}

func (n *fakeNotifier) IsOnline(userID string) bool {
	return n.online[userID]
}

// fakeLimiter denies actions listed in denied, allows everything else.
type fakeLimiter struct {
	denied map[string]bool
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{denied: map[string]bool{}}
}

func (l *fakeLimiter) Allow(userID, action string) (bool, time.Duration) {
	if l.denied[action] {
		return false, 30 * time.Second
	}
	return true, 0
}
