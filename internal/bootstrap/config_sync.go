package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/osse101/geotreasure/internal/item"
)

// SeedCatalogue loads, validates, and registers the treasure seed file.
// Ids already in the catalogue (restored from the database or seeded earlier)
// are skipped, so the seed can be re-applied on every start. A missing seed
// file is not an error.
func SeedCatalogue(ctx context.Context, path string, registrar item.Registrar, adminID string) (*item.SeedResult, error) {
	slog.Info(LogMsgSeedingCatalogue, "path", path)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		slog.Warn(LogMsgSeedFileMissing, "path", path)
		return &item.SeedResult{}, nil
	}

	loader := item.NewLoader()

	seed, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadSeed, err)
	}

	if err := loader.Validate(seed); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidSeed, err)
	}

	result, err := loader.Seed(ctx, seed, registrar, adminID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedApplySeed, err)
	}

	slog.Info(LogMsgCatalogueSeeded,
		"version", seed.Version,
		"checksum", seed.Checksum,
		"registered", result.ItemsRegistered,
		"skipped", result.ItemsSkipped)

	return result, nil
}
