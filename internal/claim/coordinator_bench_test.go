package claim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/profile"
	"github.com/osse101/geotreasure/internal/registry"
)

// newBenchCoordinator seeds items and owners without going through the
// registry's logging register path
func newBenchCoordinator(b *testing.B, items, owners int) *Coordinator {
	b.Helper()
	ctx := context.Background()
	clock := clockwork.NewFakeClock()

	catalogue := make([]domain.Item, items)
	for i := range catalogue {
		catalogue[i] = domain.Item{
			ID:           fmt.Sprintf("t%d", i),
			Name:         "Treasure",
			Rarity:       domain.RarityCommon,
			LocationRef:  testLocation,
			RewardPoints: 10,
		}
	}
	reg := registry.New(testAdmin, clock)
	reg.Restore(ctx, catalogue)

	profiles := make([]domain.Profile, owners)
	for i := range profiles {
		profiles[i] = domain.Profile{OwnerID: fmt.Sprintf("o%d", i), Username: "bench"}
	}
	store := profile.NewStore(clock)
	store.Restore(ctx, profiles)

	return NewCoordinator(reg, store)
}

func quietLogs(b *testing.B) {
	b.Helper()
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	b.Cleanup(func() { slog.SetDefault(prev) })
}

// Every claim wins: distinct items spread over many owners
func BenchmarkCoordinator_ClaimDistinct(b *testing.B) {
	quietLogs(b)
	coord := newBenchCoordinator(b, b.N, 64)
	ctx := context.Background()
	var next atomic.Int64

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			n := next.Add(1) - 1
			_, _ = coord.Claim(ctx, Request{
				OwnerID:       fmt.Sprintf("o%d", n%64),
				ItemID:        fmt.Sprintf("t%d", n),
				LocationProof: testLocation,
				Now:           n,
			})
		}
	})
}

// Every claim after the first loses on the discovered flag
func BenchmarkCoordinator_ClaimContended(b *testing.B) {
	quietLogs(b)
	coord := newBenchCoordinator(b, 1, 64)
	ctx := context.Background()
	var next atomic.Int64

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			n := next.Add(1)
			_, _ = coord.Claim(ctx, Request{
				OwnerID:       fmt.Sprintf("o%d", n%64),
				ItemID:        "t0",
				LocationProof: testLocation,
				Now:           n,
			})
		}
	})
}
