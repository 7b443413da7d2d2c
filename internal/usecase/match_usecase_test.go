package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrylink/internal/domain/entity"
	"carrylink/internal/usecase"
	"carrylink/pkg/errors"
)

type matchFixture struct {
	listingRepo      *fakeListingRepo
	matchRepo        *fakeMatchRepo
	notificationRepo *fakeNotificationRepo
	notifier         *fakeNotifier
	limiter          *fakeLimiter
	uc               *usecase.MatchUseCase

	senderListing   *entity.Listing
	travelerListing *entity.Listing
}

func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()

	f := &matchFixture{
		listingRepo:      newFakeListingRepo(),
		matchRepo:        newFakeMatchRepo(),
		notificationRepo: newFakeNotificationRepo(),
		notifier:         newFakeNotifier(),
		limiter:          newFakeLimiter(),
	}
	f.uc = usecase.NewMatchUseCase(f.matchRepo, f.listingRepo, f.notificationRepo, f.notifier, f.limiter)

	ctx := context.Background()

	f.senderListing = &entity.Listing{
		UserID:      "alice",
		Type:        entity.ListingTypeSender,
		Origin:      "Jakarta",
		Destination: "Singapore",
		Sender:      &entity.SenderDetails{ItemDescription: "Documents", ItemWeight: 0.5},
	}
	require.NoError(t, f.listingRepo.Create(ctx, f.senderListing))

	f.travelerListing = &entity.Listing{
		UserID:      "bob",
		Type:        entity.ListingTypeTraveler,
		Origin:      "Jakarta",
		Destination: "Singapore",
		Traveler:    &entity.TravelerDetails{AvailableSpace: 5},
	}
	require.NoError(t, f.listingRepo.Create(ctx, f.travelerListing))

	return f
}

func TestCreateMatch(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	match, existed, err := f.uc.CreateMatch(ctx, "alice", f.senderListing.ID, f.travelerListing.ID)
	require.NoError(t, err)
	assert.False(t, existed)

	assert.Equal(t, entity.MatchStatusPending, match.Status)
	assert.Equal(t, entity.PaymentStatusPending, match.PaymentStatus)
	assert.Equal(t, "alice", match.SenderUserID)
	assert.Equal(t, "bob", match.TravelerUserID)
	assert.ElementsMatch(t, []string{"alice", "bob"}, match.UserIDs)
	assert.ElementsMatch(t, []string{f.senderListing.ID, f.travelerListing.ID}, match.ListingIDs)
	assert.Equal(t, map[string]int{"alice": 0, "bob": 0}, match.UnreadCount)

	// Both listings flip to matched as a side effect.
	sender, _ := f.listingRepo.GetByID(ctx, f.senderListing.ID)
	traveler, _ := f.listingRepo.GetByID(ctx, f.travelerListing.ID)
	assert.Equal(t, entity.ListingStatusMatched, sender.Status)
	assert.Equal(t, entity.ListingStatusMatched, traveler.Status)
	assert.Equal(t, 1, sender.Matches)
	assert.Equal(t, 1, traveler.Matches)

	// The counterpart gets a notification, both sides get a live push.
	assert.Len(t, f.notificationRepo.forUser("bob"), 1)
	assert.Empty(t, f.notificationRepo.forUser("alice"))
	assert.Equal(t, 1, f.notifier.matchPushes["alice"])
	assert.Equal(t, 1, f.notifier.matchPushes["bob"])
}

func TestCreateMatchIdempotent(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	first, existed, err := f.uc.CreateMatch(ctx, "alice", f.senderListing.ID, f.travelerListing.ID)
	require.NoError(t, err)
	require.False(t, existed)

	// Replaying the same pair, from either side, returns the same match.
	second, existed, err := f.uc.CreateMatch(ctx, "bob", f.senderListing.ID, f.travelerListing.ID)
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, first.ID, second.ID)

	assert.Len(t, f.matchRepo.matches, 1)

	// No duplicate notifications on replay.
	assert.Len(t, f.notificationRepo.forUser("bob"), 1)
}

func TestCreateMatchListingFlipFailureDoesNotRollBack(t *testing.T) {
	f := newMatchFixture(t)
	f.listingRepo.failMarkMatched = true
	ctx := context.Background()

	match, existed, err := f.uc.CreateMatch(ctx, "alice", f.senderListing.ID, f.travelerListing.ID)
	require.NoError(t, err)
	assert.False(t, existed)
	assert.NotEmpty(t, match.ID)

	// The match survives even though the listings stayed active.
	sender, _ := f.listingRepo.GetByID(ctx, f.senderListing.ID)
	assert.Equal(t, entity.ListingStatusActive, sender.Status)
}

func TestCreateMatchValidation(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	// Swapped listing kinds.
	_, _, err := f.uc.CreateMatch(ctx, "alice", f.travelerListing.ID, f.senderListing.ID)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	// Requester owns neither listing.
	_, _, err = f.uc.CreateMatch(ctx, "mallory", f.senderListing.ID, f.travelerListing.ID)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	// Unknown listing.
	_, _, err = f.uc.CreateMatch(ctx, "alice", "missing", f.travelerListing.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	// Different route.
	other := &entity.Listing{
		UserID:      "bob",
		Type:        entity.ListingTypeTraveler,
		Origin:      "Jakarta",
		Destination: "Tokyo",
		Traveler:    &entity.TravelerDetails{AvailableSpace: 3},
	}
	require.NoError(t, f.listingRepo.Create(ctx, other))
	_, _, err = f.uc.CreateMatch(ctx, "alice", f.senderListing.ID, other.ID)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	// Both listings owned by the same user.
	ownSender := &entity.Listing{
		UserID:      "bob",
		Type:        entity.ListingTypeSender,
		Origin:      "Jakarta",
		Destination: "Singapore",
		Sender:      &entity.SenderDetails{ItemDescription: "Shoes", ItemWeight: 1},
	}
	require.NoError(t, f.listingRepo.Create(ctx, ownSender))
	_, _, err = f.uc.CreateMatch(ctx, "bob", ownSender.ID, f.travelerListing.ID)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestCreateMatchRateLimited(t *testing.T) {
	f := newMatchFixture(t)
	f.limiter.denied["create_match"] = true

	_, _, err := f.uc.CreateMatch(context.Background(), "alice", f.senderListing.ID, f.travelerListing.ID)
	assert.True(t, errors.Is(err, errors.CodeTooManyRequests))
}

func TestGetMatchParticipantOnly(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	match, _, err := f.uc.CreateMatch(ctx, "alice", f.senderListing.ID, f.travelerListing.ID)
	require.NoError(t, err)

	got, err := f.uc.GetMatch(ctx, match.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, match.ID, got.ID)

	_, err = f.uc.GetMatch(ctx, match.ID, "mallory")
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestUpdateMatch(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	match, _, err := f.uc.CreateMatch(ctx, "alice", f.senderListing.ID, f.travelerListing.ID)
	require.NoError(t, err)

	price := 120.0
	confirmed := true
	updated, err := f.uc.UpdateMatch(ctx, match.ID, "bob", usecase.UpdateMatchInput{
		Status:           entity.MatchStatusAccepted,
		MeetingLocation:  "Changi T1",
		AgreedPrice:      &price,
		MeetingConfirmed: &confirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MatchStatusAccepted, updated.Status)
	assert.Equal(t, "Changi T1", updated.MeetingLocation)
	assert.Equal(t, 120.0, updated.AgreedPrice)
	assert.True(t, updated.MeetingConfirmed)

	// Last write wins: the other side can overwrite without restriction.
	updated, err = f.uc.UpdateMatch(ctx, match.ID, "alice", usecase.UpdateMatchInput{
		Status: entity.MatchStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MatchStatusCompleted, updated.Status)

	_, err = f.uc.UpdateMatch(ctx, match.ID, "alice", usecase.UpdateMatchInput{Status: "bogus"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = f.uc.UpdateMatch(ctx, match.ID, "mallory", usecase.UpdateMatchInput{Status: entity.MatchStatusCancelled})
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestSubscribeMatches(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	match, _, err := f.uc.CreateMatch(ctx, "alice", f.senderListing.ID, f.travelerListing.ID)
	require.NoError(t, err)

	subCtx, cancel := context.WithCancel(ctx)

	var snapshots [][]*entity.Match
	err = f.uc.SubscribeMatches(subCtx, "alice", func(matches []*entity.Match) {
		snapshots = append(snapshots, matches)
		cancel()
	})
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	require.Len(t, snapshots[0], 1)
	assert.Equal(t, match.ID, snapshots[0][0].ID)
}

func TestGetUserMatchesOrdering(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	base := time.Now()

	// Three matches for carol: one with a recent message, one with an old
	// message, one with no messages at all.
	withRecent := &entity.Match{
		SenderListingID: "s1", TravelerListingID: "t1",
		SenderUserID: "carol", TravelerUserID: "u1",
		UserIDs: []string{"carol", "u1"}, Status: entity.MatchStatusPending,
	}
	withOld := &entity.Match{
		SenderListingID: "s2", TravelerListingID: "t2",
		SenderUserID: "carol", TravelerUserID: "u2",
		UserIDs: []string{"carol", "u2"}, Status: entity.MatchStatusPending,
	}
	silent := &entity.Match{
		SenderListingID: "s3", TravelerListingID: "t3",
		SenderUserID: "carol", TravelerUserID: "u3",
		UserIDs: []string{"carol", "u3"}, Status: entity.MatchStatusPending,
	}
	require.NoError(t, f.matchRepo.Create(ctx, withRecent))
	require.NoError(t, f.matchRepo.Create(ctx, withOld))
	require.NoError(t, f.matchRepo.Create(ctx, silent))

	f.matchRepo.matches[withRecent.ID].LastMessageAt = base.Add(-1 * time.Minute)
	f.matchRepo.matches[withOld.ID].LastMessageAt = base.Add(-2 * time.Hour)
	f.matchRepo.matches[silent.ID].CreatedAt = base.Add(-1 * time.Hour)

	matches, err := f.uc.GetUserMatches(ctx, "carol")
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// lastMessageAt when present, createdAt otherwise, newest first.
	assert.Equal(t, withRecent.ID, matches[0].ID)
	assert.Equal(t, silent.ID, matches[1].ID)
	assert.Equal(t, withOld.ID, matches[2].ID)
}
