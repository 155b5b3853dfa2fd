package config

import "time"

// Defaults
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultEnvironment       = "dev"
	DefaultServiceName       = "geotreasure"
	DefaultVersion           = "dev"
	DefaultDBPort            = "5432"
	DefaultDBName            = "geotreasure"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultKafkaTopic        = "geotreasure.events"
	DefaultJWTIssuer         = "geotreasure"
	DefaultSeedPath          = "configs/treasures.json"
	DefaultWorkerCount       = 4
	DefaultWorkerQueueSize   = 256
	DefaultRewardCacheSize   = 1024
	DefaultRewardCacheTTL    = 5 * time.Minute
	DefaultDeadLetterPath    = "logs/event_deadletter.jsonl"
	DefaultEventRetention    = 30
)

// Secrets shipped in .env.example
const (
	ExampleJWTSecret  = "generate_with_openssl_rand_hex_32"
	ExampleDBPassword = "change_this_secure_password"
)

// MinJWTSecretLength is the shortest secret accepted outside dev
const MinJWTSecretLength = 32
