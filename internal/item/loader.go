package item

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/logger"
	"github.com/osse101/geotreasure/internal/validation"
)

// Sentinel errors for the seed loader
var (
	ErrDuplicateItemID = errors.New("duplicate item id")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the on-disk treasure catalogue seed
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`
	Treasures   []Def  `json:"treasures"`

	// Checksum is the sha256 of the file the config was read from
	Checksum string `json:"-"`
}

// Def is a single treasure definition in the seed
type Def struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURI     string `json:"image_uri"`
	Rarity       string `json:"rarity"`
	Location     string `json:"location_reference"`
	RequiredRank string `json:"required_rank"`
	RewardPoints int    `json:"reward_points"`
}

// ToItem converts the definition into an undiscovered catalogue item
func (d Def) ToItem() (domain.Item, error) {
	rarity, err := domain.ParseRarity(d.Rarity)
	if err != nil {
		return domain.Item{}, fmt.Errorf(ErrFmtUnknownRarity, ErrInvalidConfig, d.ItemID, d.Rarity)
	}
	rank, err := domain.ParseRank(d.RequiredRank)
	if err != nil {
		return domain.Item{}, fmt.Errorf(ErrFmtUnknownRank, ErrInvalidConfig, d.ItemID, d.RequiredRank)
	}
	return domain.Item{
		ID:           d.ItemID,
		Name:         d.Name,
		Description:  d.Description,
		ImageURI:     d.ImageURI,
		Rarity:       rarity,
		LocationRef:  d.Location,
		RequiredRank: rank,
		RewardPoints: d.RewardPoints,
	}, nil
}

// Registrar is the catalogue write path used by seeding
type Registrar interface {
	Register(ctx context.Context, caller string, item domain.Item) (domain.Item, error)
}

// Loader handles loading, validating and seeding the treasure catalogue
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	Seed(ctx context.Context, config *Config, registrar Registrar, adminID string) (*SeedResult, error)
}

// SeedResult contains the result of seeding the catalogue
type SeedResult struct {
	ItemsRegistered int
	ItemsSkipped    int
}

type seedLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &seedLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads a seed file and validates it against the treasure schema
func (l *seedLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadSeedFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, SeedSchemaPath); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaFailed, path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseSeedFailed, err)
	}

	sum := sha256.Sum256(data)
	config.Checksum = hex.EncodeToString(sum[:])
	return &config, nil
}

// Validate checks the rules the schema cannot express, like unique ids
func (l *seedLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	seen := make(map[string]bool, len(config.Treasures))
	for i, def := range config.Treasures {
		if def.ItemID == "" {
			return fmt.Errorf(ErrFmtEmptyItemID, ErrInvalidConfig, i)
		}
		if seen[def.ItemID] {
			return fmt.Errorf(ErrFmtDuplicateID, ErrDuplicateItemID, def.ItemID)
		}
		seen[def.ItemID] = true

		if def.Location == "" {
			return fmt.Errorf(ErrFmtEmptyLocation, ErrInvalidConfig, def.ItemID)
		}
		if def.RewardPoints < 0 {
			return fmt.Errorf(ErrFmtNegativePts, ErrInvalidConfig, def.ItemID)
		}
		if _, err := def.ToItem(); err != nil {
			return err
		}
	}
	return nil
}

// Seed registers every treasure through registrar as adminID. Ids already in
// the catalogue are skipped, so seeding is safe to repeat on every start.
func (l *seedLoader) Seed(ctx context.Context, config *Config, registrar Registrar, adminID string) (*SeedResult, error) {
	log := logger.FromContext(ctx)

	if err := l.Validate(config); err != nil {
		return nil, err
	}
	log.Info(LogMsgSeedLoaded,
		"version", config.Version,
		"treasures", len(config.Treasures),
		"checksum", config.Checksum)

	result := &SeedResult{}
	for _, def := range config.Treasures {
		item, err := def.ToItem()
		if err != nil {
			return nil, err
		}

		if _, err := registrar.Register(ctx, adminID, item); err != nil {
			if errors.Is(err, domain.ErrDuplicateItem) {
				log.Debug(LogMsgSeedSkipExisting, "item_id", def.ItemID)
				result.ItemsSkipped++
				continue
			}
			return nil, fmt.Errorf(ErrMsgRegisterFailed, def.ItemID, err)
		}
		result.ItemsRegistered++
	}

	log.Info(LogMsgSeedCompleted,
		"registered", result.ItemsRegistered,
		"skipped", result.ItemsSkipped)
	return result, nil
}
