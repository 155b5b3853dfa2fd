package logger

const (
	ContextKeyRequestID = "request_id"
	ContextKeyOwnerID   = "owner_id"
)

const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const DefaultServiceName = "geotreasure"

// Attribute keys on every record and on request-scoped loggers
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyOwnerID     = "owner_id"
)
