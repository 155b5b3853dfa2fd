package repository

import (
	"context"

	"github.com/osse101/geotreasure/internal/domain"
)

// Profile defines the interface for progress profile persistence
type Profile interface {
	// InsertProfile stores a newly created profile. An existing owner is an ErrProfileExists.
	InsertProfile(ctx context.Context, profile domain.Profile) error

	// GetAllProfiles returns every stored profile
	GetAllProfiles(ctx context.Context) ([]domain.Profile, error)
}
