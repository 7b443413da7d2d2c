package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrylink/internal/domain/entity"
	"carrylink/internal/usecase"
	"carrylink/pkg/errors"
)

func newListingUseCase() (*usecase.ListingUseCase, *fakeListingRepo) {
	repo := newFakeListingRepo()
	return usecase.NewListingUseCase(repo, 50, 20), repo
}

func validSenderInput() usecase.CreateListingInput {
	return usecase.CreateListingInput{
		Type:        entity.ListingTypeSender,
		Origin:      "Jakarta",
		Destination: "Singapore",
		Price:       50,
		Sender:      &entity.SenderDetails{ItemDescription: "Documents", ItemWeight: 0.5},
	}
}

func validTravelerInput() usecase.CreateListingInput {
	return usecase.CreateListingInput{
		Type:        entity.ListingTypeTraveler,
		Origin:      "Jakarta",
		Destination: "Singapore",
		Price:       30,
		Traveler:    &entity.TravelerDetails{AvailableSpace: 5},
	}
}

func TestCreateListingDefaults(t *testing.T) {
	uc, _ := newListingUseCase()

	listing, err := uc.CreateListing(context.Background(), "alice", validSenderInput())
	require.NoError(t, err)

	assert.Equal(t, entity.ListingStatusActive, listing.Status)
	assert.Equal(t, 0, listing.Views)
	assert.Equal(t, 0, listing.Matches)
	assert.Equal(t, "USD", listing.PriceCurrency)
	assert.Equal(t, "alice", listing.UserID)
	assert.NotEmpty(t, listing.ID)
}

func TestCreateListingValidation(t *testing.T) {
	uc, _ := newListingUseCase()
	ctx := context.Background()

	// Sender listing without the sender payload.
	input := validSenderInput()
	input.Sender = nil
	_, err := uc.CreateListing(ctx, "alice", input)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	// Traveler listing carrying a sender payload.
	input = validTravelerInput()
	input.Sender = &entity.SenderDetails{ItemDescription: "x", ItemWeight: 1}
	_, err = uc.CreateListing(ctx, "alice", input)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	// Non-positive weight.
	input = validSenderInput()
	input.Sender.ItemWeight = 0
	_, err = uc.CreateListing(ctx, "alice", input)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	// Blank route.
	input = validSenderInput()
	input.Origin = "   "
	_, err = uc.CreateListing(ctx, "alice", input)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	// Unknown type.
	input = validSenderInput()
	input.Type = "courier"
	_, err = uc.CreateListing(ctx, "alice", input)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestGetListingViewCounting(t *testing.T) {
	uc, repo := newListingUseCase()
	ctx := context.Background()

	listing, err := uc.CreateListing(ctx, "alice", validSenderInput())
	require.NoError(t, err)

	// Owner looking at their own listing is not a view.
	_, err = uc.GetListing(ctx, listing.ID, "alice")
	require.NoError(t, err)
	stored, _ := repo.GetByID(ctx, listing.ID)
	assert.Equal(t, 0, stored.Views)

	// Anonymous reads are not counted either.
	_, err = uc.GetListing(ctx, listing.ID, "")
	require.NoError(t, err)
	stored, _ = repo.GetByID(ctx, listing.ID)
	assert.Equal(t, 0, stored.Views)

	got, err := uc.GetListing(ctx, listing.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)
	stored, _ = repo.GetByID(ctx, listing.ID)
	assert.Equal(t, 1, stored.Views)
}

func TestUpdateListingOwnerOnly(t *testing.T) {
	uc, _ := newListingUseCase()
	ctx := context.Background()

	listing, err := uc.CreateListing(ctx, "alice", validSenderInput())
	require.NoError(t, err)

	price := 75.0
	updated, err := uc.UpdateListing(ctx, listing.ID, "alice", usecase.UpdateListingInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.Price)

	_, err = uc.UpdateListing(ctx, listing.ID, "bob", usecase.UpdateListingInput{Price: &price})
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestDeleteListingIsSoftDelete(t *testing.T) {
	uc, repo := newListingUseCase()
	ctx := context.Background()

	listing, err := uc.CreateListing(ctx, "alice", validSenderInput())
	require.NoError(t, err)

	require.NoError(t, uc.DeleteListing(ctx, listing.ID, "alice"))

	// The document survives with status cancelled.
	stored, err := repo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusCancelled, stored.Status)

	err = uc.DeleteListing(ctx, listing.ID, "bob")
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestFindCandidateMatchesRouteScope(t *testing.T) {
	uc, repo := newListingUseCase()
	ctx := context.Background()

	mine, err := uc.CreateListing(ctx, "alice", validSenderInput())
	require.NoError(t, err)

	// On-route traveler: the one expected candidate.
	onRoute, err := uc.CreateListing(ctx, "bob", validTravelerInput())
	require.NoError(t, err)

	// Same kind as mine: never a candidate.
	_, err = uc.CreateListing(ctx, "carol", validSenderInput())
	require.NoError(t, err)

	// Opposite kind, different destination.
	offRoute := validTravelerInput()
	offRoute.Destination = "Tokyo"
	_, err = uc.CreateListing(ctx, "dave", offRoute)
	require.NoError(t, err)

	// Opposite kind, right route, but no longer active.
	cancelled, err := uc.CreateListing(ctx, "erin", validTravelerInput())
	require.NoError(t, err)
	require.NoError(t, repo.SoftDelete(ctx, cancelled.ID))

	// Alice's own traveler listing on the same route is filtered out.
	_, err = uc.CreateListing(ctx, "alice", validTravelerInput())
	require.NoError(t, err)

	candidates, err := uc.FindCandidateMatches(ctx, mine.ID, "alice")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, onRoute.ID, candidates[0].ID)

	// Only the owner can ask for candidates.
	_, err = uc.FindCandidateMatches(ctx, mine.ID, "bob")
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestListActiveListingsTypeFilter(t *testing.T) {
	uc, _ := newListingUseCase()
	ctx := context.Background()

	_, err := uc.CreateListing(ctx, "alice", validSenderInput())
	require.NoError(t, err)
	_, err = uc.CreateListing(ctx, "bob", validTravelerInput())
	require.NoError(t, err)

	all, err := uc.ListActiveListings(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	travelers, err := uc.ListActiveListings(ctx, entity.ListingTypeTraveler)
	require.NoError(t, err)
	require.Len(t, travelers, 1)
	assert.Equal(t, entity.ListingTypeTraveler, travelers[0].Type)

	_, err = uc.ListActiveListings(ctx, "bogus")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}
