package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тесты на живой базе запускаются, только если задан TEST_POSTGRES_CONN.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	conn := os.Getenv("TEST_POSTGRES_CONN")
	if conn == "" {
		t.Skip("TEST_POSTGRES_CONN is not set")
	}

	m, err := migrate.New("file://../../migrations", conn)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}

	pool, err := pgxpool.New(context.Background(), conn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createUser(t *testing.T, repo *PostgresUserRepository, role models.Role) *models.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), models.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		FullName:     "Test " + string(role),
		Role:         role,
	})
	require.NoError(t, err)
	return u
}

func createShipment(t *testing.T, repo *PostgresShipmentRepository, clientId string) *models.Shipment {
	t.Helper()
	s, err := repo.CreateShipment(context.Background(), models.Shipment{
		ClientID:        clientId,
		Title:           "Carga " + uuid.NewString()[:8],
		PickupAddress:   "Zona 1, Ciudad de Guatemala",
		PickupLat:       14.6349,
		PickupLng:       -90.5069,
		DeliveryAddress: "Quetzaltenango",
		DeliveryLat:     14.8347,
		DeliveryLng:     -91.5181,
		WeightKg:        500,
		Pieces:          1,
		CargoType:       models.GeneralCargo,
		EstimatedPrice:  1690,
	})
	require.NoError(t, err)
	return s
}

func marketplaceIDs(t *testing.T, repo *PostgresShipmentRepository) map[string]bool {
	t.Helper()
	list, err := repo.ListMarketplace(context.Background(), models.MarketplaceFilter{Limit: 100000})
	require.NoError(t, err)
	ids := make(map[string]bool, len(list))
	for _, s := range list {
		ids[s.ID] = true
	}
	return ids
}

func TestPostgres_MarketplaceExcludesHeldShipments(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewPostgresUserRepository(pool)
	shipments := NewPostgresShipmentRepository(pool)
	offers := NewPostgresOfferRepository(pool)

	client := createUser(t, users, models.ClientRole)
	carrier := createUser(t, users, models.TransporterRole)

	open := createShipment(t, shipments, client.ID)
	taken := createShipment(t, shipments, client.ID)

	_, err := offers.CreateOffer(ctx, models.Offer{ShipmentID: open.ID, TransporterID: carrier.ID, Amount: 1500})
	require.NoError(t, err)
	offer, err := offers.CreateOffer(ctx, models.Offer{ShipmentID: taken.ID, TransporterID: carrier.ID, Amount: 1600})
	require.NoError(t, err)

	ids := marketplaceIDs(t, shipments)
	assert.True(t, ids[open.ID])
	assert.True(t, ids[taken.ID])

	_, err = offers.AcceptOffer(ctx, offer.ID)
	require.NoError(t, err)

	ids = marketplaceIDs(t, shipments)
	assert.True(t, ids[open.ID], "shipment with only a pending offer stays listed")
	assert.False(t, ids[taken.ID], "shipment with an accepted offer is not listed")

	// Даже если статус отправки не обновился, закреплённое предложение исключает её из выдачи.
	_, err = pool.Exec(ctx, `UPDATE shipments SET status = 'pending' WHERE id = $1`, taken.ID)
	require.NoError(t, err)
	assert.False(t, marketplaceIDs(t, shipments)[taken.ID])
}

func TestPostgres_RatingSummary(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewPostgresUserRepository(pool)
	shipments := NewPostgresShipmentRepository(pool)
	reviews := NewPostgresReviewRepository(pool)

	client := createUser(t, users, models.ClientRole)
	carrier := createUser(t, users, models.TransporterRole)

	empty, err := reviews.GetRatingSummary(ctx, carrier.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{}, empty)

	for _, rating := range []int{5, 4, 4} {
		s := createShipment(t, shipments, client.ID)
		_, err := reviews.CreateReview(ctx, models.Review{
			ShipmentID: s.ID, TransporterID: carrier.ID, ClientID: client.ID, Rating: rating,
		})
		require.NoError(t, err)
	}

	summary, err := reviews.GetRatingSummary(ctx, carrier.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Average: 4.3, Count: 3}, summary)
}
