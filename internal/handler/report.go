package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-report-api/internal/auth"
	"github.com/ecotrack/waste-report-api/internal/middleware"
	"github.com/ecotrack/waste-report-api/internal/model"
	"github.com/ecotrack/waste-report-api/internal/queue"
	"github.com/ecotrack/waste-report-api/internal/repository"
)

// ReportHandler serves the waste-report CRUD endpoints. The publish hooks
// are optional; when nil no events are emitted. Publishing is best effort
// and never fails the request.
type ReportHandler struct {
	Reports              ReportStore
	PublishSubmitted     func(context.Context, queue.ReportSubmittedEvent) error
	PublishStatusChanged func(context.Context, queue.ReportStatusChangedEvent) error
}

func NewReportHandler(reports ReportStore) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

type createReportReq struct {
	Location  string  `json:"location"`
	WasteType string  `json:"waste_type"`
	Quantity  float64 `json:"quantity"`
}

type updateReportReq struct {
	Location  *string  `json:"location"`
	WasteType *string  `json:"waste_type"`
	Quantity  *float64 `json:"quantity"`
}

type statusReq struct {
	Status string `json:"status"`
}

// Create submits a new waste report owned by the caller. Status always
// starts at pending regardless of the body.
func (h *ReportHandler) Create(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Location = strings.TrimSpace(req.Location)
	req.WasteType = strings.TrimSpace(req.WasteType)
	if req.Location == "" || req.WasteType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location/waste_type required"})
	}
	if req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be non-negative"})
	}

	wr := model.WasteReport{
		Location:  req.Location,
		WasteType: req.WasteType,
		Quantity:  req.Quantity,
		Status:    model.StatusPending,
		OwnerID:   id.ID,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Reports.Create(ctx, &wr); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create report failed"})
	}

	if h.PublishSubmitted != nil {
		_ = h.PublishSubmitted(ctx, queue.ReportSubmittedEvent{
			ReportID:    wr.ID,
			OwnerID:     wr.OwnerID,
			Location:    wr.Location,
			WasteType:   wr.WasteType,
			Quantity:    wr.Quantity,
			Status:      string(wr.Status),
			SubmittedAt: wr.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, toReportResponse(wr))
}

// List returns the caller's reports, or every report when the caller is a
// superuser. A non-superuser can never receive a row they do not own.
func (h *ReportHandler) List(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	skip, limit := paging(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		items []model.WasteReport
		err   error
	)
	if auth.CanListAllReports(id) {
		items, err = h.Reports.ListAll(ctx, skip, limit)
	} else {
		items, err = h.Reports.ListByOwner(ctx, id.ID, skip, limit)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]reportResponse, 0, len(items))
	for _, wr := range items {
		out = append(out, toReportResponse(wr))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one report, owner or superuser only.
func (h *ReportHandler) Get(c echo.Context) error {
	wr, errResp := h.loadAuthorized(c, auth.CanReadReport)
	if errResp != nil {
		return errResp(c)
	}
	return c.JSON(http.StatusOK, toReportResponse(wr))
}

// Update edits a report's content fields, owner or superuser only. The
// owner reference and status are untouchable through this endpoint.
func (h *ReportHandler) Update(c echo.Context) error {
	wr, errResp := h.loadAuthorized(c, auth.CanWriteReport)
	if errResp != nil {
		return errResp(c)
	}
	var req updateReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var upd model.WasteReportUpdate
	if req.Location != nil {
		l := strings.TrimSpace(*req.Location)
		if l == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "location must not be empty"})
		}
		upd.Location = &l
	}
	if req.WasteType != nil {
		w := strings.TrimSpace(*req.WasteType)
		if w == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "waste_type must not be empty"})
		}
		upd.WasteType = &w
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be non-negative"})
		}
		upd.Quantity = req.Quantity
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Reports.Update(ctx, wr.ID, upd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Reports.GetByID(ctx, wr.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load report failed"})
	}
	return c.JSON(http.StatusOK, toReportResponse(updated))
}

// Delete removes a report, owner or superuser only.
func (h *ReportHandler) Delete(c echo.Context) error {
	wr, errResp := h.loadAuthorized(c, auth.CanWriteReport)
	if errResp != nil {
		return errResp(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Reports.Delete(ctx, wr.ID); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "waste report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStatus moves a report into a new processing state. Reached only
// through the superuser route group.
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	wr, err := h.Reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "waste report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	newStatus := model.ReportStatus(req.Status)
	if err := h.Reports.UpdateStatus(ctx, id, newStatus); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	if h.PublishStatusChanged != nil && wr.Status != newStatus {
		_ = h.PublishStatusChanged(ctx, queue.ReportStatusChangedEvent{
			ReportID:  wr.ID,
			OwnerID:   wr.OwnerID,
			OldStatus: string(wr.Status),
			NewStatus: string(newStatus),
			ChangedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	wr.Status = newStatus
	return c.JSON(http.StatusOK, toReportResponse(wr))
}

// loadAuthorized parses the :id parameter, loads the report and applies the
// given policy decision. On failure it returns a response func for the
// handler to run; on success the report. 404 is only produced after the
// report is known missing, 403 after it is known present but not the
// caller's to touch.
func (h *ReportHandler) loadAuthorized(c echo.Context, allowed func(auth.Identity, model.WasteReport) bool) (model.WasteReport, func(echo.Context) error) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		return model.WasteReport{}, func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
	}
	id, err := pathID(c)
	if err != nil {
		return model.WasteReport{}, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	wr, err := h.Reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return model.WasteReport{}, func(c echo.Context) error {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "waste report not found"})
			}
		}
		return model.WasteReport{}, func(c echo.Context) error {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	if !allowed(caller, wr) {
		return model.WasteReport{}, func(c echo.Context) error {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}
	return wr, nil
}
