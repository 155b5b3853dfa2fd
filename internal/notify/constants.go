package notify

import "time"

// Record header keys
const (
	HeaderEventType    = "event-type"
	HeaderEventVersion = "event-version"
)

// Producer tuning
const (
	DefaultProducerLinger = 10 * time.Millisecond
)

// Log messages
const (
	LogMsgForwarderStarted   = "Kafka event forwarder started"
	LogMsgForwardFailed      = "Failed to forward event to kafka"
	LogMsgEventMarshalFailed = "Failed to marshal event for kafka"
	LogMsgForwarderFlushed   = "Kafka event forwarder flushed"
)
