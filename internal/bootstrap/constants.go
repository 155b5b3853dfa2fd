package bootstrap

import "time"

const (
	DirPermission     = 0o755
	LogFilePermission = 0o644
)

const (
	// session files are named session_<timestamp>.log and sort by name
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	// LogFileRetentionCount older sessions survive next to the new one
	LogFileRetentionCount = 9
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting geotreasure"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

const (
	EventMaxRetries = 5
	EventRetryDelay = 2 * time.Second
)

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

const (
	LogMsgInMemoryMode      = "DB_HOST not set, running with in-memory storage"
	LogMsgStateRestored     = "State restored from database"
	LogMsgRedisLeaderboard  = "Leaderboard backed by redis"
	LogMsgMemoryLeaderboard = "REDIS_URL not set, leaderboard kept in memory"

	ErrMsgFailedConnectDatabase = "failed to connect to database"
	ErrMsgFailedMigrate         = "failed to migrate database"
	ErrMsgFailedLoadItems       = "failed to load treasures"
	ErrMsgFailedLoadProfiles    = "failed to load profiles"
	ErrMsgFailedConnectRedis    = "failed to connect to redis"
	ErrMsgFailedSeedLeaderboard = "failed to seed leaderboard"
)

const (
	LogMsgSeedingCatalogue = "Seeding treasure catalogue"
	LogMsgCatalogueSeeded  = "Treasure catalogue seeded"
	LogMsgSeedFileMissing  = "Seed file not found, starting with the stored catalogue"

	ErrMsgFailedLoadSeed  = "failed to load treasure seed"
	ErrMsgInvalidSeed     = "invalid treasure seed"
	ErrMsgFailedApplySeed = "failed to register seeded treasures"
)

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgRewardCacheSubscribed      = "Reward cache invalidation subscribed"
	LogMsgKafkaDisabled              = "KAFKA_BROKERS not set, events stay in process"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
	ErrMsgFailedCreateForwarder      = "failed to create kafka forwarder"
)

const (
	EventCleanupInterval   = 24 * time.Hour
	WorkerNameEventCleanup = "event_cleanup"
)

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownWorkers        = "Draining background workers..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgForwarderFailed            = "Kafka forwarder shutdown failed"
	LogMsgPeriodicWorkerFailed       = "Periodic worker shutdown failed"
	LogMsgRedisCloseFailed           = "Redis client close failed"
)
