package domain

// Rank is a totally ordered tier gating which items a profile may claim.
// Beginner < Explorer < Hunter < Master.
type Rank int

const (
	RankBeginner Rank = iota
	RankExplorer
	RankHunter
	RankMaster
)

var rankNames = map[Rank]string{
	RankBeginner: "beginner",
	RankExplorer: "explorer",
	RankHunter:   "hunter",
	RankMaster:   "master",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "unknown"
}

// Label returns the display form of the rank, e.g. "Explorer"
func (r Rank) Label() string {
	return titleCase(r.String())
}

func (r Rank) Valid() bool {
	_, ok := rankNames[r]
	return ok
}

// AtLeast reports whether r meets the required gate
func (r Rank) AtLeast(required Rank) bool {
	return r >= required
}

// ParseRank converts a rank code (case-insensitive) to a Rank
func ParseRank(s string) (Rank, error) {
	for r, name := range rankNames {
		if equalFold(name, s) {
			return r, nil
		}
	}
	return RankBeginner, ErrInvalidInput
}

func (r Rank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rank) UnmarshalText(text []byte) error {
	parsed, err := ParseRank(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
