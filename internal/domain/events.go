package domain

// Event type constants shared by the event bus, metrics and the event log.
//
// Event types follow the pattern: <entity>.<action>
const (
	// EventTypeItemDiscovered is published for every successful claim
	EventTypeItemDiscovered = "item.discovered"

	// EventTypeRankAdvanced is published when a claim pushes a profile into a higher rank
	EventTypeRankAdvanced = "rank.advanced"

	// EventTypeProfileCreated is published when a new profile is registered
	EventTypeProfileCreated = "profile.created"
)
