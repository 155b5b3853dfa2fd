package item

// Seed file
const (
	SeedSchemaPath  = "configs/schemas/treasures.schema.json"
	DefaultSeedPath = "configs/treasures.json"
)

// ==================== Error Messages ====================

const (
	ErrMsgReadSeedFileFailed = "failed to read treasure seed file: %w"
	ErrMsgParseSeedFailed    = "failed to parse treasure seed: %w"
	ErrMsgSchemaFailed       = "schema validation failed for %s: %w"
	ErrMsgRegisterFailed     = "failed to register treasure '%s': %w"
	ErrMsgPersistItemFailed  = "failed to persist treasure '%s': %w"
)

// Validation error messages (fragments used with error wrapping)
const (
	ErrMsgConfigNil = "config is nil"
)

const (
	ErrFmtEmptyItemID   = "%w: treasure at index %d has empty item_id"
	ErrFmtDuplicateID   = "%w: '%s'"
	ErrFmtUnknownRarity = "%w: treasure '%s' has unknown rarity %q"
	ErrFmtUnknownRank   = "%w: treasure '%s' has unknown required_rank %q"
	ErrFmtNegativePts   = "%w: treasure '%s' has negative reward_points"
	ErrFmtEmptyLocation = "%w: treasure '%s' has empty location_reference"
)

// ==================== Log Messages ====================

const (
	LogMsgSeedLoaded       = "Treasure seed loaded"
	LogMsgSeedCompleted    = "Treasure seeding completed"
	LogMsgSeedSkipExisting = "Treasure already in catalogue, skipping"
	LogMsgItemPersisted    = "Treasure persisted"
	LogMsgRollbackFailed   = "Failed to back out unpersisted treasure"
)
