package domain

import "time"

// Item represents a discoverable treasure in the shared catalogue.
// ID is the stable key; LocationRef is an opaque credential matched
// byte-for-byte against the proof a finder submits.
type Item struct {
	ID           string    `json:"item_id" db:"item_id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	ImageURI     string    `json:"image_uri" db:"image_uri"`
	Rarity       Rarity    `json:"rarity" db:"rarity"`
	LocationRef  string    `json:"location_reference" db:"location_reference"`
	RequiredRank Rank      `json:"required_rank" db:"required_rank"`
	RewardPoints int       `json:"reward_points" db:"reward_points"`
	Discovered   bool      `json:"discovered" db:"discovered"`
	DiscoveredBy string    `json:"discovered_by,omitempty" db:"discovered_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Rarity is the collectible tier of an item
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityLegendary
)

var rarityNames = map[Rarity]string{
	RarityCommon:    "common",
	RarityRare:      "rare",
	RarityLegendary: "legendary",
}

// String returns the stable lower-case code for the rarity
func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return "unknown"
}

// Label returns the display label used in reward metadata ("Legendary", "Rare", "Common")
func (r Rarity) Label() string {
	return titleCase(r.String())
}

// Valid reports whether r is one of the known tiers
func (r Rarity) Valid() bool {
	_, ok := rarityNames[r]
	return ok
}

// ParseRarity converts a rarity code (case-insensitive) to a Rarity
func ParseRarity(s string) (Rarity, error) {
	for r, name := range rarityNames {
		if equalFold(name, s) {
			return r, nil
		}
	}
	return RarityCommon, ErrInvalidInput
}

func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rarity) UnmarshalText(text []byte) error {
	parsed, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
