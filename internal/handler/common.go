package handler // handler defines the HTTP handlers of the API

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-report-api/internal/model"
)

// UserStore is the persistence surface the user-facing handlers need.
// Declared here so tests can swap in an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, fullName string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context, skip, limit int) ([]model.User, error)
	Update(ctx context.Context, id uint64, upd model.UserUpdate) error
	Delete(ctx context.Context, id uint64) error
}

// ReportStore is the persistence surface the waste-report handlers need.
type ReportStore interface {
	Create(ctx context.Context, wr *model.WasteReport) error
	GetByID(ctx context.Context, id uint64) (model.WasteReport, error)
	ListByOwner(ctx context.Context, ownerID uint64, skip, limit int) ([]model.WasteReport, error)
	ListAll(ctx context.Context, skip, limit int) ([]model.WasteReport, error)
	Update(ctx context.Context, id uint64, upd model.WasteReportUpdate) error
	UpdateStatus(ctx context.Context, id uint64, status model.ReportStatus) error
	Delete(ctx context.Context, id uint64) error
}

// userResponse is the JSON shape of a user. The password hash is not a field
// here, so it cannot leak regardless of what a handler returns.
type userResponse struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
	}
}

type reportResponse struct {
	ID        uint64    `json:"id"`
	Location  string    `json:"location"`
	WasteType string    `json:"waste_type"`
	Quantity  float64   `json:"quantity"`
	Status    string    `json:"status"`
	OwnerID   uint64    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toReportResponse(wr model.WasteReport) reportResponse {
	return reportResponse{
		ID:        wr.ID,
		Location:  wr.Location,
		WasteType: wr.WasteType,
		Quantity:  wr.Quantity,
		Status:    string(wr.Status),
		OwnerID:   wr.OwnerID,
		CreatedAt: wr.CreatedAt,
	}
}

// reqCtx bounds a handler's store calls with the standard 5s timeout.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// paging reads skip/limit query parameters with defaults and caps limit at
// 100 items.
func paging(c echo.Context) (skip, limit int) {
	skip, limit = 0, 100
	if v, err := strconv.Atoi(c.QueryParam("skip")); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v >= 1 && v <= 100 {
		limit = v
	}
	return skip, limit
}
