package leaderboard

// Redis keys
const (
	keyScores = "geotreasure:leaderboard:scores"
	keyInfo   = "geotreasure:leaderboard:info"
)

// Limits for Top queries
const (
	DefaultTopN = 10
	MaxTopN     = 100
)

// Log messages
const (
	LogMsgRedisConnected    = "Connected to redis leaderboard"
	LogMsgLeaderboardSeeded = "Leaderboard seeded from profiles"
)
