package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error messages
const (
	ErrMsgFailedToBeginTx     = "failed to begin transaction"
	ErrMsgFailedToCommitTx    = "failed to commit transaction"
	ErrMsgFailedToEncodeJSON  = "failed to encode json"
	ErrMsgFailedToScanRow     = "failed to scan row"
	ErrMsgFailedToMarkFound   = "failed to mark item discovered"
	ErrMsgFailedToSaveProfile = "failed to save profile"
	ErrMsgFailedToSaveRecord  = "failed to save reward record"
	ErrMsgFailedToLogEvent    = "failed to log event"
	ErrMsgFailedToQueryEvents = "failed to query events"
	ErrMsgFailedToPurgeEvents = "failed to purge old events"
)
