package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/item"
	"github.com/osse101/geotreasure/internal/registry"
)

const testAdmin = "admin"

func newTestCatalogue(t *testing.T) (item.Service, *registry.Registry) {
	t.Helper()
	reg := registry.New(testAdmin, clockwork.NewFakeClockAt(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)))
	svc := item.NewService(reg, nil)

	ctx := context.Background()
	for _, it := range []domain.Item{
		{ID: "harbor-compass", Name: "Harbor Compass", Rarity: domain.RarityCommon, LocationRef: "pier-3", RewardPoints: 10},
		{ID: "tower-crown", Name: "Tower Crown", Rarity: domain.RarityLegendary, LocationRef: "bell-tower", RequiredRank: domain.RankHunter, RewardPoints: 250},
	} {
		_, err := svc.Register(ctx, testAdmin, it)
		require.NoError(t, err)
	}
	return svc, reg
}

func TestHandleListItems(t *testing.T) {
	svc, reg := newTestCatalogue(t)
	require.NoError(t, reg.MarkDiscovered("harbor-compass"))

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantItems []string
	}{
		{"all", "", http.StatusOK, []string{"harbor-compass", "tower-crown"}},
		{"by rarity", "?rarity=legendary", http.StatusOK, []string{"tower-crown"}},
		{"available only", "?available=true", http.StatusOK, []string{"tower-crown"}},
		{"bad rarity", "?rarity=mythic", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleListItems(svc).ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/items"+tt.query, nil))

			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantItems == nil {
				return
			}
			var resp ItemListResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			ids := make([]string, 0, len(resp.Items))
			for _, v := range resp.Items {
				ids = append(ids, v.ID)
			}
			assert.ElementsMatch(t, tt.wantItems, ids)
			assert.Equal(t, len(tt.wantItems), resp.Count)
		})
	}
}

func TestHandleListItems_HidesLocation(t *testing.T) {
	svc, _ := newTestCatalogue(t)

	w := httptest.NewRecorder()
	HandleListItems(svc).ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/items", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "pier-3")
	assert.NotContains(t, w.Body.String(), "location_reference")
}

func TestHandleGetItem(t *testing.T) {
	svc, _ := newTestCatalogue(t)

	t.Run("found", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest("GET", "/api/v1/items/tower-crown", nil), "itemID", "tower-crown")
		w := httptest.NewRecorder()
		HandleGetItem(svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var view ItemView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, "legendary", view.Rarity)
		assert.Equal(t, "hunter", view.RequiredRank)
		assert.False(t, view.Discovered)
		assert.NotContains(t, w.Body.String(), "bell-tower")
	})

	t.Run("unknown", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest("GET", "/api/v1/items/nope", nil), "itemID", "nope")
		w := httptest.NewRecorder()
		HandleGetItem(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgTreasureNotFound)
	})
}
