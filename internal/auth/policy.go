package auth

import "github.com/ecotrack/waste-report-api/internal/model"

// Identity is the verified caller attached to every authenticated request.
// A superuser is the same record type with a capability flag, not a separate
// user kind; every privilege decision branches here, never on a type.
type Identity struct {
	ID          uint64
	IsSuperuser bool
}

// The policy functions below are pure: permit/deny is a function of the
// caller identity and the target row alone, with no hidden state. Handlers
// surface every denial uniformly as 403.

// CanReadReport reports whether caller may view the report: the owner or
// any superuser.
func CanReadReport(caller Identity, r model.WasteReport) bool {
	return caller.IsSuperuser || r.OwnerID == caller.ID
}

// CanWriteReport reports whether caller may update or delete the report.
// The rule is identical to reading: owner or superuser.
func CanWriteReport(caller Identity, r model.WasteReport) bool {
	return caller.IsSuperuser || r.OwnerID == caller.ID
}

// CanListAllReports decides whether a listing query runs unfiltered or is
// scoped to the caller's own rows.
func CanListAllReports(caller Identity) bool {
	return caller.IsSuperuser
}

// CanViewOtherUser gates the superuser-only /users endpoints; /users/me is
// always available to the caller for themselves.
func CanViewOtherUser(caller Identity) bool {
	return caller.IsSuperuser
}

// CanEditOtherUser gates updates and deletes of arbitrary user records.
func CanEditOtherUser(caller Identity) bool {
	return caller.IsSuperuser
}
