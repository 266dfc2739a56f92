package model

import "time"

// ReportStatus is the processing state of a waste report. The database
// column is an ENUM restricted to the same four values.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusProcessing ReportStatus = "processing"
	StatusCompleted  ReportStatus = "completed"
	StatusRejected   ReportStatus = "rejected"
)

// ValidStatus reports whether s is one of the four enumerated states.
func ValidStatus(s string) bool {
	switch ReportStatus(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// WasteReport mirrors the `waste_reports` table. OwnerID references the
// creating user and is immutable after creation; every authorization
// decision on a report compares it against the caller's identity.
//
// Fields:
//
//	ID        – primary key identifier.
//	Location  – free-text location of the reported waste.
//	WasteType – free-text kind of waste (e.g. "plastic").
//	Quantity  – non-negative amount as estimated by the reporter.
//	Status    – one of pending | processing | completed | rejected.
//	OwnerID   – id of the user who submitted the report.
//	CreatedAt – timestamp of submission.
type WasteReport struct {
	ID        uint64       // waste_reports.id
	Location  string       // waste_reports.location
	WasteType string       // waste_reports.waste_type
	Quantity  float64      // waste_reports.quantity
	Status    ReportStatus // waste_reports.status
	OwnerID   uint64       // waste_reports.owner_id
	CreatedAt time.Time    // waste_reports.created_at
}

// WasteReportUpdate is a partial update of a report's content fields. Status
// changes go through their own superuser-only path and the owner reference
// can never be reassigned.
type WasteReportUpdate struct {
	Location  *string
	WasteType *string
	Quantity  *float64
}
