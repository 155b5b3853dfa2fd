package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/leaderboard"
)

func TestHandleGetLeaderboard(t *testing.T) {
	ctx := context.Background()
	board := leaderboard.NewMemoryBoard()
	for _, p := range []domain.Profile{
		{OwnerID: "a", Username: "alice", TotalFound: 3, Score: 30},
		{OwnerID: "b", Username: "bob", TotalFound: 9, Score: 120},
		{OwnerID: "c", Username: "cara", TotalFound: 1, Score: 10},
	} {
		require.NoError(t, board.Record(ctx, p))
	}

	t.Run("ordered by score", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleGetLeaderboard(board).ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/leaderboard?limit=2", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp LeaderboardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Entries, 2)
		assert.Equal(t, "b", resp.Entries[0].OwnerID)
		assert.Equal(t, 1, resp.Entries[0].Position)
		assert.Equal(t, "a", resp.Entries[1].OwnerID)
	})

	t.Run("empty board", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleGetLeaderboard(leaderboard.NewMemoryBoard()).ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/leaderboard", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"entries":[]`)
	})

	t.Run("bad limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleGetLeaderboard(board).ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/leaderboard?limit=-3", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidLimit)
	})
}
