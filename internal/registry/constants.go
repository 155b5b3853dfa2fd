package registry

// Log messages
const (
	LogMsgItemRegistered     = "Treasure registered"
	LogMsgRegisterDenied     = "Treasure registration denied"
	LogMsgRegisterDuplicate  = "Treasure registration rejected: duplicate id"
	LogMsgRegistryRestored   = "Registry restored from storage"
	LogMsgRestoreSkipInvalid = "Skipping invalid stored treasure"
)

// Validation limits
const (
	MaxItemIDLength   = 64
	MaxNameLength     = 120
	MaxLocationLength = 256
)
