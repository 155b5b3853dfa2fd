package profile

// Log messages
const (
	LogMsgProfileCreated   = "Profile created"
	LogMsgProfileExists    = "Profile already exists"
	LogMsgProfilesRestored = "Profiles restored from storage"
)

// Validation limits
const (
	MaxOwnerIDLength  = 128
	MaxUsernameLength = 50
)

// Service log messages
const (
	LogMsgProfilePersistFailed = "Failed to persist profile"
	LogMsgProfilePublishFailed = "Failed to publish profile created event"
	LogMsgLeaderboardFailed    = "Failed to add profile to leaderboard"
	LogMsgRemoveFailed         = "Failed to back out unpersisted profile"
)
