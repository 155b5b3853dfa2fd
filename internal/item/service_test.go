package item

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/geotreasure/internal/domain"
)

type mockItemRepo struct {
	mock.Mock
}

func (m *mockItemRepo) InsertItem(ctx context.Context, item domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockItemRepo) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func mustItem(t *testing.T, d Def) domain.Item {
	t.Helper()
	item, err := d.ToItem()
	require.NoError(t, err)
	return item
}

func TestService_RegisterPersists(t *testing.T) {
	ctx := context.Background()
	repo := &mockItemRepo{}
	repo.On("InsertItem", ctx, mock.MatchedBy(func(it domain.Item) bool {
		return it.ID == "t1" && !it.Discovered && !it.CreatedAt.IsZero()
	})).Return(nil).Once()

	svc := NewService(newTestRegistry(), repo)
	registered, err := svc.Register(ctx, testAdmin, mustItem(t, def("t1")))
	require.NoError(t, err)
	assert.Equal(t, "t1", registered.ID)

	got, err := svc.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, registered, got)
	repo.AssertExpectations(t)
}

func TestService_RegisterBacksOutOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mockItemRepo{}
	repo.On("InsertItem", ctx, mock.Anything).Return(errors.New("connection reset")).Once()

	reg := newTestRegistry()
	svc := NewService(reg, repo)

	_, err := svc.Register(ctx, testAdmin, mustItem(t, def("t1")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist treasure 't1'")
	assert.Equal(t, 0, reg.Len())

	_, err = svc.Get(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestService_RegisterRejectedBeforeStorage(t *testing.T) {
	ctx := context.Background()
	repo := &mockItemRepo{}
	svc := NewService(newTestRegistry(), repo)

	_, err := svc.Register(ctx, "mallory", mustItem(t, def("t1")))
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	repo.AssertNotCalled(t, "InsertItem", mock.Anything, mock.Anything)
}

func TestService_WithoutRepository(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRegistry(), nil)

	_, err := svc.Register(ctx, testAdmin, mustItem(t, def("t1")))
	require.NoError(t, err)
	_, err = svc.Register(ctx, testAdmin, mustItem(t, def("t1")))
	assert.ErrorIs(t, err, domain.ErrDuplicateItem)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()
	svc := NewService(reg, nil)

	legendary := def("c")
	legendary.Rarity = "legendary"
	for _, d := range []Def{def("b"), def("a"), legendary} {
		_, err := svc.Register(ctx, testAdmin, mustItem(t, d))
		require.NoError(t, err)
	}
	require.NoError(t, reg.MarkDiscovered("a"))

	ids := func(items []domain.Item) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(svc.List(ctx, ListFilter{})))
	assert.Equal(t, []string{"b", "c"}, ids(svc.List(ctx, ListFilter{OnlyAvailable: true})))

	rare := domain.RarityRare
	assert.Equal(t, []string{"a", "b"}, ids(svc.List(ctx, ListFilter{Rarity: &rare})))
}
