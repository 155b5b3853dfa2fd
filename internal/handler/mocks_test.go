package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/geotreasure/internal/auth"
	"github.com/osse101/geotreasure/internal/claim"
	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/eventlog"
	"github.com/osse101/geotreasure/internal/profile"
)

type mockProfileService struct {
	mock.Mock
}

func (m *mockProfileService) Register(ctx context.Context, ownerID, username string) (profile.View, error) {
	args := m.Called(ctx, ownerID, username)
	return args.Get(0).(profile.View), args.Error(1)
}

func (m *mockProfileService) Get(ctx context.Context, ownerID string) (profile.View, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(profile.View), args.Error(1)
}

type mockClaimService struct {
	mock.Mock
}

func (m *mockClaimService) Claim(ctx context.Context, ownerID, itemID, locationProof string) (*claim.Result, error) {
	args := m.Called(ctx, ownerID, itemID, locationProof)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*claim.Result), args.Error(1)
}

type mockRewardLister struct {
	mock.Mock
}

func (m *mockRewardLister) Collection(ctx context.Context, ownerID string) ([]domain.RewardRecord, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RewardRecord), args.Error(1)
}

type mockEventLister struct {
	mock.Mock
}

func (m *mockEventLister) Recent(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Event), args.Error(1)
}

// asOwner attaches an authenticated owner the way the auth middleware does
func asOwner(r *http.Request, owner string) *http.Request {
	return r.WithContext(auth.WithOwner(r.Context(), owner))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func body(s string) *strings.Reader {
	return strings.NewReader(s)
}
