package claim

// Log messages
const (
	LogMsgClaimCommitted     = "Claim committed"
	LogMsgClaimRejected      = "Claim rejected"
	LogMsgRankAdvanced       = "Rank advanced"
	LogMsgEventPublishFailed = "Failed to publish claim event"
	LogMsgScoreRecordFailed  = "Failed to record leaderboard score"
	LogMsgPersistFailed      = "Failed to queue claim persistence"
)

// Claim outcomes used as metric labels
const (
	OutcomeSuccess           = "success"
	OutcomeUnknownItem       = "unknown_item"
	OutcomeAlreadyDiscovered = "already_discovered"
	OutcomeInsufficientRank  = "insufficient_rank"
	OutcomeLocationMismatch  = "location_mismatch"
	OutcomeProfileNotFound   = "profile_not_found"
	OutcomeInvalidInput      = "invalid_input"
	OutcomeError             = "error"
)
