// Package queue defines message payloads exchanged over the message broker.
package queue

// ReportSubmittedEvent is published when a waste report is successfully
// created. It carries enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type ReportSubmittedEvent struct {
	ReportID    uint64  `json:"report_id"`
	OwnerID     uint64  `json:"owner_id"`
	Location    string  `json:"location"`
	WasteType   string  `json:"waste_type"`
	Quantity    float64 `json:"quantity"`
	Status      string  `json:"status"`
	SubmittedAt string  `json:"submitted_at"`
}

// ReportStatusChangedEvent is published when a superuser moves a report to
// a new processing state.
type ReportStatusChangedEvent struct {
	ReportID  uint64 `json:"report_id"`
	OwnerID   uint64 `json:"owner_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedAt string `json:"changed_at"`
}
