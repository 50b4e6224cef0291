package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErr(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "no rows", in: pgx.ErrNoRows, want: ErrNotFound},
		{name: "wrapped no rows", in: fmt.Errorf("select: %w", pgx.ErrNoRows), want: ErrNotFound},
		{name: "unique", in: &pgconn.PgError{Code: "23505"}, want: ErrDuplicate},
		{name: "bad uuid", in: &pgconn.PgError{Code: "22P02"}, want: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErr(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	other := errors.New("connection reset")
	assert.Equal(t, other, mapErr(other))
}

func TestNewEvent(t *testing.T) {
	offer := models.Offer{ID: "o1", ShipmentID: "s1", Amount: 1200, Status: models.AcceptedOffer}

	e, err := newEvent(models.OfferAccepted, offer.ID, offer, "tr-1", "", "client-1", "tr-1")
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, models.OfferAccepted, e.EventType)
	assert.Equal(t, "o1", e.AggregateID)
	assert.Equal(t, []string{"tr-1", "client-1"}, e.Recipients)
	assert.Equal(t, models.OutboxCreated, e.Status)

	var decoded models.Offer
	require.NoError(t, json.Unmarshal(e.Payload, &decoded))
	assert.Equal(t, offer.Amount, decoded.Amount)
}
