package events

import "context"

// Event types
const (
	EventCampaignLaunched = "campaign_launched"
	EventLaunchFailed     = "launch_failed"
	EventAssetUploaded    = "asset_uploaded"
	EventAccountConnected = "account_connected"
)

// StreamCampaigns carries campaign lifecycle events consumed by the webhook
// worker and the dashboard WS hub.
const StreamCampaigns = "events:campaigns"

type Event struct {
	Type    string         `json:"type"`
	UserID  string         `json:"user_id,omitempty"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
