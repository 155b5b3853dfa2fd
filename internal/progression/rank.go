package progression

import "github.com/osse101/geotreasure/internal/domain"

// Rank thresholds on cumulative discoveries. Fixed by design; not configurable.
const (
	ExplorerThreshold = 5
	HunterThreshold   = 20
	MasterThreshold   = 50
)

// RankFor maps a cumulative discovery count to its rank tier.
// Negative counts are treated as zero.
func RankFor(totalFound int) domain.Rank {
	switch {
	case totalFound >= MasterThreshold:
		return domain.RankMaster
	case totalFound >= HunterThreshold:
		return domain.RankHunter
	case totalFound >= ExplorerThreshold:
		return domain.RankExplorer
	default:
		return domain.RankBeginner
	}
}

// NextThreshold returns the discovery count needed for the next rank and
// false once the profile is already Master.
func NextThreshold(totalFound int) (int, bool) {
	switch RankFor(totalFound) {
	case domain.RankBeginner:
		return ExplorerThreshold, true
	case domain.RankExplorer:
		return HunterThreshold, true
	case domain.RankHunter:
		return MasterThreshold, true
	default:
		return 0, false
	}
}
