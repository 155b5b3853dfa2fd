package progression

// StreakWindowMillis is the rolling window (24h) within which a claim extends a streak
const StreakWindowMillis int64 = 86_400_000

// NextStreak computes the streak after a claim at now.
// last must be the pre-update last activity time. A profile that has never
// claimed carries a zero streak and always starts at 1; a first claim may
// happen at t=0, so last alone is not a "never" marker.
func NextStreak(last, now int64, previous int) int {
	if previous < 1 {
		return 1
	}
	if now-last <= StreakWindowMillis {
		return previous + 1
	}
	return 1
}
