package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidRarity         = "Invalid rarity filter"
	ErrMsgInvalidTime           = "Invalid time parameter, expected RFC 3339"
	ErrMsgUnauthenticated       = "Authentication required"
	ErrMsgEventLogUnavailable   = "Event log is not available"
)

// User-facing messages for domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgTreasureNotFound   = "Treasure not found"
	ErrMsgTreasureExists     = "A treasure with that id already exists"
	ErrMsgAlreadyFound       = "Treasure already found"
	ErrMsgRankTooLow         = "Come back when you rank up"
	ErrMsgWrongLocation      = "You are not at the treasure's location"
	ErrMsgNotAuthorized      = "You are not allowed to do that"
	ErrMsgProfileNotFound    = "Profile not found"
	ErrMsgProfileExists      = "You already have a profile"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgServiceError     = "Service error"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgClaimAccepted    = "Claim accepted"
	LogMsgProfileRequested = "Profile registration requested"
	LogMsgItemRegistered   = "Treasure registered"
)

// Success messages
const (
	MsgTreasureFound      = "Treasure found!"
	MsgProfileCreated     = "Profile created"
	MsgTreasureRegistered = "Treasure registered"
)
