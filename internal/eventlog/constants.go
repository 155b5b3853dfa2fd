package eventlog

// JSON payload field keys that identify the owner an event belongs to
const (
	PayloadKeyFinder = "finder"
	PayloadKeyOwner  = "owner"
)

// Metadata keys
const (
	MetadataKeyVersion = "version"
)

// Query limits
const (
	DefaultQueryLimit = 50
	MaxQueryLimit     = 500
)

// Log messages - service events
const (
	LogMsgEventPayloadNotMap = "Event payload could not be flattened, skipping log"
	LogMsgFailedToLogEvent   = "Failed to log event to database"
	LogMsgEventLogged        = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupDisabled     = "Event retention disabled, skipping cleanup"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldOwnerID       = "owner_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retention_days"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deleted"
)
