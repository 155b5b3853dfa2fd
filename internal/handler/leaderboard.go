package handler

import (
	"net/http"

	"github.com/osse101/geotreasure/internal/leaderboard"
)

// LeaderboardResponse wraps the top-N entries
type LeaderboardResponse struct {
	Entries []leaderboard.Entry `json:"entries"`
}

// HandleGetLeaderboard returns the highest scoring profiles. Query: limit (default 10, max 100).
func HandleGetLeaderboard(board leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetLimitParam(r, w)
		if !ok {
			return
		}

		entries, err := board.Top(r.Context(), leaderboard.ClampTopN(limit))
		if err != nil {
			respondServiceError(w, r, "Get leaderboard", err)
			return
		}
		if entries == nil {
			entries = []leaderboard.Entry{}
		}
		respondJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
	}
}
