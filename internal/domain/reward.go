package domain

// RewardRecord is the immutable artifact minted for the finder of an item
type RewardRecord struct {
	ID           string            `json:"record_id" db:"record_id"`
	ItemID       string            `json:"item_id" db:"item_id"`
	Name         string            `json:"name" db:"name"`
	Description  string            `json:"description" db:"description"`
	ImageURI     string            `json:"image_uri" db:"image_uri"`
	Rarity       Rarity            `json:"rarity" db:"rarity"`
	LocationRef  string            `json:"location_reference" db:"location_reference"`
	RewardPoints int               `json:"reward_points" db:"reward_points"`
	FoundAt      int64             `json:"found_at_ms" db:"found_at_ms"`
	OwnerID      string            `json:"owner_id" db:"owner_id"`
	Metadata     map[string]string `json:"metadata" db:"metadata"`
}

// Reward metadata keys
const (
	MetadataKeyRarity    = "rarity"
	MetadataKeyLocation  = "location"
	MetadataKeyFoundDate = "found_date"
)

// FoundDateLayout formats the found_date metadata label
const FoundDateLayout = "2006-01-02"
