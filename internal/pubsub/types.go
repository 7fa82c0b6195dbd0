package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// disabled is used when no GCP project is configured: events are only logged.
type disabled struct{}

// EventType represents the type of event/message sent via pubsub. It doubles as
// the topic name.
type EventType string

const (
	EventBallRecorded    EventType = "ball-recorded"
	EventWicketFallen    EventType = "wicket-fallen"
	EventInningsSwitched EventType = "innings-switched"
	EventTossCompleted   EventType = "toss-completed"
)
