package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhartmann/tripledger/internal/domain"
	"github.com/jhartmann/tripledger/internal/repo"
)

func TestContributionRepo_CreateAndGet(t *testing.T) {
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	participants := repo.NewParticipantRepo(tx)
	contributions := repo.NewContributionRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	ada, err := participants.Create(ctx, participantFixture(trip))
	require.NoError(t, err)

	created, err := contributions.Create(ctx, domain.Contribution{
		TripID:        trip.ID,
		ParticipantID: ada.ID,
		Amount:        150,
		Date:          trip.StartDate,
		Comment:       "fund seed",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := contributions.GetByID(ctx, trip.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.Amount)
	assert.Equal(t, "fund seed", got.Comment)
	assert.Equal(t, ada.ID, got.ParticipantID)
}

func TestContributionRepo_ListByTripID_OrderedByDate(t *testing.T) {
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	participants := repo.NewParticipantRepo(tx)
	contributions := repo.NewContributionRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	ada, err := participants.Create(ctx, participantFixture(trip))
	require.NoError(t, err)

	_, err = contributions.Create(ctx, domain.Contribution{
		TripID: trip.ID, ParticipantID: ada.ID, Amount: 50,
		Date: trip.StartDate.AddDate(0, 0, 3),
	})
	require.NoError(t, err)
	_, err = contributions.Create(ctx, domain.Contribution{
		TripID: trip.ID, ParticipantID: ada.ID, Amount: 100,
		Date: trip.StartDate,
	})
	require.NoError(t, err)

	got, err := contributions.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 100.0, got[0].Amount, "earlier contribution first")
	assert.Equal(t, 50.0, got[1].Amount)
}

func TestContributionRepo_Update(t *testing.T) {
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	participants := repo.NewParticipantRepo(tx)
	contributions := repo.NewContributionRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	ada, err := participants.Create(ctx, participantFixture(trip))
	require.NoError(t, err)

	created, err := contributions.Create(ctx, domain.Contribution{
		TripID: trip.ID, ParticipantID: ada.ID, Amount: 50, Date: trip.StartDate,
	})
	require.NoError(t, err)

	created.Amount = 75
	created.Comment = "topped up"

	updated, err := contributions.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.Amount)
	assert.Equal(t, "topped up", updated.Comment)
}

func TestContributionRepo_Delete_NotFound(t *testing.T) {
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	contributions := repo.NewContributionRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	err = contributions.Delete(ctx, trip.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
