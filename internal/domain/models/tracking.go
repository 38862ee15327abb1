package models

import "time"

// TrackingStatusAwaitingUpdate is reported when the carrier has no data yet
// or the tracking provider is unreachable.
const TrackingStatusAwaitingUpdate = "awaiting_update"

// TrackingInfo is the result of a shipment lookup.
type TrackingInfo struct {
	Number     string     `json:"number"`
	Courier    string     `json:"courier,omitempty"`
	Status     string     `json:"status"`
	LastUpdate *time.Time `json:"lastUpdate,omitempty"`
	Checkpoint string     `json:"checkpoint,omitempty"`
	Link       string     `json:"link"`
}
