package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/geotreasure/internal/claim"
	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/event"
)

func TestHandleClaim(t *testing.T) {
	found := &claim.Result{
		Record:  domain.RewardRecord{ID: "rec-1", ItemID: "library-key", OwnerID: "owner-1", RewardPoints: 10},
		Profile: domain.Profile{OwnerID: "owner-1", TotalFound: 5, Rank: domain.RankExplorer},
		Events: []event.Event{
			{Type: event.ItemDiscovered},
			{Type: event.RankAdvanced},
		},
	}

	tests := []struct {
		name           string
		owner          string
		body           string
		setupMock      func(*mockClaimService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "found",
			owner: "owner-1",
			body:  `{"item_id":"library-key","location_proof":"reading-room"}`,
			setupMock: func(m *mockClaimService) {
				m.On("Claim", mock.Anything, "owner-1", "library-key", "reading-room").Return(found, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   MsgTreasureFound,
		},
		{
			name:  "already discovered",
			owner: "owner-1",
			body:  `{"item_id":"library-key","location_proof":"reading-room"}`,
			setupMock: func(m *mockClaimService) {
				m.On("Claim", mock.Anything, "owner-1", "library-key", "reading-room").
					Return(nil, domain.ErrAlreadyDiscovered)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgAlreadyFound,
		},
		{
			name:  "rank too low",
			owner: "owner-1",
			body:  `{"item_id":"tower-crown","location_proof":"bell-tower"}`,
			setupMock: func(m *mockClaimService) {
				m.On("Claim", mock.Anything, "owner-1", "tower-crown", "bell-tower").
					Return(nil, domain.ErrInsufficientRank)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   ErrMsgRankTooLow,
		},
		{
			name:  "wrong place",
			owner: "owner-1",
			body:  `{"item_id":"library-key","location_proof":"kitchen"}`,
			setupMock: func(m *mockClaimService) {
				m.On("Claim", mock.Anything, "owner-1", "library-key", "kitchen").
					Return(nil, domain.ErrLocationMismatch)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   ErrMsgWrongLocation,
		},
		{
			name:  "no profile",
			owner: "owner-1",
			body:  `{"item_id":"library-key","location_proof":"reading-room"}`,
			setupMock: func(m *mockClaimService) {
				m.On("Claim", mock.Anything, "owner-1", "library-key", "reading-room").
					Return(nil, domain.ErrProfileNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgProfileNotFound,
		},
		{
			name:  "unexpected failure",
			owner: "owner-1",
			body:  `{"item_id":"library-key","location_proof":"reading-room"}`,
			setupMock: func(m *mockClaimService) {
				m.On("Claim", mock.Anything, "owner-1", "library-key", "reading-room").
					Return(nil, errors.New("lock poisoned"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgGenericServerError,
		},
		{
			name:           "missing proof",
			owner:          "owner-1",
			body:           `{"item_id":"library-key"}`,
			setupMock:      func(*mockClaimService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"location_proof"`,
		},
		{
			name:           "anonymous",
			body:           `{"item_id":"library-key","location_proof":"reading-room"}`,
			setupMock:      func(*mockClaimService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   ErrMsgUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockClaimService{}
			tt.setupMock(svc)

			req := httptest.NewRequest("POST", "/api/v1/claims", body(tt.body))
			if tt.owner != "" {
				req = asOwner(req, tt.owner)
			}
			w := httptest.NewRecorder()

			HandleClaim(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleClaim_ResponseShape(t *testing.T) {
	svc := &mockClaimService{}
	svc.On("Claim", mock.Anything, "owner-1", "library-key", "reading-room").Return(&claim.Result{
		Record:  domain.RewardRecord{ID: "rec-1", ItemID: "library-key", OwnerID: "owner-1"},
		Profile: domain.Profile{OwnerID: "owner-1", TotalFound: 5, Rank: domain.RankExplorer},
		Events:  []event.Event{{Type: event.ItemDiscovered}, {Type: event.RankAdvanced}},
	}, nil)

	req := asOwner(httptest.NewRequest("POST", "/api/v1/claims",
		body(`{"item_id":"library-key","location_proof":"reading-room"}`)), "owner-1")
	w := httptest.NewRecorder()
	HandleClaim(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp ClaimResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.RankAdvanced)
	assert.Equal(t, "rec-1", resp.Record.ID)
	assert.Equal(t, domain.RankExplorer, resp.Profile.Rank)
	require.NotNil(t, resp.Profile.NextRankAt)
	assert.Equal(t, 20, *resp.Profile.NextRankAt)
}
