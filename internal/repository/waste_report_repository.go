package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ecotrack/waste-report-api/internal/model"
)

// WasteReportRepo persists waste reports. Listing is ownership-scoped or
// unscoped; the caller decides which based on the authorization policy, this
// layer only runs the query it is told to.
type WasteReportRepo struct{ DB *sql.DB }

func NewWasteReportRepo(db *sql.DB) *WasteReportRepo { return &WasteReportRepo{DB: db} }

const reportCols = "id,location,waste_type,quantity,status,owner_id,created_at"

// Create inserts the report and fills in its generated ID and creation time.
// Status and OwnerID are taken from the struct as the handler prepared them.
func (r *WasteReportRepo) Create(ctx context.Context, wr *model.WasteReport) error {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO waste_reports (location, waste_type, quantity, status, owner_id, created_at) VALUES (?,?,?,?,?,?)",
		wr.Location, wr.WasteType, wr.Quantity, string(wr.Status), wr.OwnerID, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	wr.ID = uint64(id)
	wr.CreatedAt = now
	return nil
}

// GetByID fetches a report by id.
func (r *WasteReportRepo) GetByID(ctx context.Context, id uint64) (model.WasteReport, error) {
	var wr model.WasteReport
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+reportCols+" FROM waste_reports WHERE id=? LIMIT 1", id).
		Scan(&wr.ID, &wr.Location, &wr.WasteType, &wr.Quantity, &wr.Status, &wr.OwnerID, &wr.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WasteReport{}, ErrReportNotFound
	}
	return wr, err
}

// ListByOwner returns the reports belonging to ownerID, newest first.
func (r *WasteReportRepo) ListByOwner(ctx context.Context, ownerID uint64, skip, limit int) ([]model.WasteReport, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reportCols+" FROM waste_reports WHERE owner_id=? ORDER BY id DESC LIMIT ? OFFSET ?",
		ownerID, limit, skip)
	if err != nil {
		return nil, err
	}
	return scanReports(rows)
}

// ListAll returns reports regardless of owner, newest first. Only reachable
// through the superuser listing path.
func (r *WasteReportRepo) ListAll(ctx context.Context, skip, limit int) ([]model.WasteReport, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reportCols+" FROM waste_reports ORDER BY id DESC LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	return scanReports(rows)
}

// Update applies the non-nil content fields of upd to the report row. The
// owner_id and status columns are deliberately not touchable here.
func (r *WasteReportRepo) Update(ctx context.Context, id uint64, upd model.WasteReportUpdate) error {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if upd.Location != nil {
		sets = append(sets, "location=?")
		args = append(args, *upd.Location)
	}
	if upd.WasteType != nil {
		sets = append(sets, "waste_type=?")
		args = append(args, *upd.WasteType)
	}
	if upd.Quantity != nil {
		sets = append(sets, "quantity=?")
		args = append(args, *upd.Quantity)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE waste_reports SET "+strings.Join(sets, ",")+" WHERE id=?", args...)
	return err
}

// UpdateStatus moves the report into the given state. The handler validates
// the value against the enum before calling.
func (r *WasteReportRepo) UpdateStatus(ctx context.Context, id uint64, status model.ReportStatus) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE waste_reports SET status=? WHERE id=?", string(status), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a report row.
func (r *WasteReportRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM waste_reports WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrReportNotFound
	}
	return nil
}

func scanReports(rows *sql.Rows) ([]model.WasteReport, error) {
	defer rows.Close()
	out := make([]model.WasteReport, 0)
	for rows.Next() {
		var wr model.WasteReport
		if err := rows.Scan(&wr.ID, &wr.Location, &wr.WasteType, &wr.Quantity,
			&wr.Status, &wr.OwnerID, &wr.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, wr)
	}
	return out, rows.Err()
}
