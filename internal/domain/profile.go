package domain

import "time"

// Profile is the per-user progress state. It is only ever mutated by a
// successful claim; Rank is always derived from TotalFound.
type Profile struct {
	OwnerID      string    `json:"owner_id" db:"owner_id"`
	Username     string    `json:"username" db:"username"`
	Rank         Rank      `json:"rank" db:"rank"`
	TotalFound   int       `json:"total_found" db:"total_found"`
	StreakCount  int       `json:"streak_count" db:"streak_count"`
	LastActivity int64     `json:"last_activity_ms" db:"last_activity_ms"` // ms since epoch, 0 = never
	Score        int64     `json:"score" db:"score"`
	Achievements []string  `json:"achievements" db:"achievements"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Clone returns a deep copy safe to hand out of a locked section
func (p Profile) Clone() Profile {
	out := p
	if p.Achievements != nil {
		out.Achievements = make([]string, len(p.Achievements))
		copy(out.Achievements, p.Achievements)
	}
	return out
}

// HasAchievement reports whether the named achievement is already unlocked
func (p Profile) HasAchievement(name string) bool {
	for _, a := range p.Achievements {
		if a == name {
			return true
		}
	}
	return false
}

// Achievement names
const (
	AchievementFirstDiscovery  = "first_discovery"
	AchievementLegendaryFinder = "legendary_finder"
	AchievementRankPrefix      = "rank_"
)
