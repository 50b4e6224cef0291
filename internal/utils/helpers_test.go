package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		offset     string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{name: "defaults", wantLimit: 5, wantOffset: 0},
		{name: "explicit", limit: "10", offset: "20", wantLimit: 10, wantOffset: 20},
		{name: "max", limit: "50", wantLimit: 50},
		{name: "over max", limit: "51", wantErr: true},
		{name: "zero limit", limit: "0", wantErr: true},
		{name: "negative offset", offset: "-1", wantErr: true},
		{name: "not a number", limit: "ten", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, err := ParseLimitOffset(tt.limit, tt.offset)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestParseLimitOffsetDefault(t *testing.T) {
	limit, offset, err := ParseLimitOffsetDefault("", "", MaxLimit)
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, limit)
	assert.Zero(t, offset)

	limit, _, err = ParseLimitOffsetDefault("7", "", MaxLimit)
	require.NoError(t, err)
	assert.Equal(t, 7, limit)
}

func TestWriteServiceError(t *testing.T) {
	t.Run("error response", func(t *testing.T) {
		rec := httptest.NewRecorder()
		code := WriteServiceError(rec, models.Conflict("offer already accepted"), "failed")

		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, http.StatusConflict, rec.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "offer already accepted", body["reason"])
	})

	t.Run("unknown error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		code := WriteServiceError(rec, errors.New("db down"), "failed to load")

		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Contains(t, rec.Body.String(), "failed to load")
	})
}

func TestContainsAndSplitIDs(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))

	assert.Equal(t, []string{"a", "b"}, SplitIDs(" a, ,b,a,"))
	assert.Empty(t, SplitIDs(""))
}
