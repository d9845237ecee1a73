package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/domain/model"
	"github.com/opsfloor/opevents/pkg/domain/types"
)

type eventResponse struct {
	ID               int64      `json:"id"`
	DetectedBy       string     `json:"detectedBy"`
	ImpactType       string     `json:"impactType"`
	Cause            string     `json:"cause"`
	ProjectNumber    string     `json:"projectNumber"`
	PartNumber       string     `json:"partNumber"`
	AssignedTo       string     `json:"assignedTo"`
	Comments         string     `json:"comments,omitempty"`
	CorrectiveAction string     `json:"correctiveAction,omitempty"`
	PreventiveAction string     `json:"preventiveAction,omitempty"`
	PlannedCloseDate *time.Time `json:"plannedCloseDate,omitempty"`
	ActualCloseDate  *time.Time `json:"actualCloseDate,omitempty"`
	Status           string     `json:"status"`
	Origin           string     `json:"origin,omitempty"`
	DetectedAt       time.Time  `json:"detectedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func toEventResponse(e *model.Event) *eventResponse {
	return &eventResponse{
		ID:               int64(e.ID),
		DetectedBy:       e.DetectedBy.String(),
		ImpactType:       e.ImpactType,
		Cause:            e.Cause,
		ProjectNumber:    e.ProjectNumber,
		PartNumber:       e.PartNumber,
		AssignedTo:       e.AssignedTo.String(),
		Comments:         e.Comments,
		CorrectiveAction: e.CorrectiveAction,
		PreventiveAction: e.PreventiveAction,
		PlannedCloseDate: e.PlannedCloseDate,
		ActualCloseDate:  e.ActualCloseDate,
		Status:           e.Status.String(),
		Origin:           e.Origin.String(),
		DetectedAt:       e.DetectedAt,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

type createEventRequest struct {
	DetectedBy    string `json:"detectedBy"`
	ImpactType    string `json:"impactType"`
	Cause         string `json:"cause"`
	ProjectNumber string `json:"projectNumber"`
	PartNumber    string `json:"partNumber"`
	AssignedTo    string `json:"assignedTo"`
	Comments      string `json:"comments"`
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createEventRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	draft := &model.EventDraft{
		DetectedBy:    types.PersonID(req.DetectedBy),
		ImpactType:    req.ImpactType,
		Cause:         req.Cause,
		ProjectNumber: req.ProjectNumber,
		PartNumber:    req.PartNumber,
		AssignedTo:    types.PersonID(req.AssignedTo),
		Comments:      req.Comments,
	}

	created, err := s.uc.Event.Capture(ctx, draft)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toEventResponse(created))
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	events, err := s.uc.Event.List(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	out := make([]*eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	respondJSON(ctx, w, http.StatusOK, out)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := types.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(ctx, w, goerr.Wrap(model.ErrValidation, "invalid event ID"))
		return
	}

	e, err := s.uc.Event.Get(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toEventResponse(e))
}

type updateEventRequest struct {
	ImpactType       *string `json:"impactType"`
	Cause            *string `json:"cause"`
	ProjectNumber    *string `json:"projectNumber"`
	PartNumber       *string `json:"partNumber"`
	AssignedTo       *string `json:"assignedTo"`
	Comments         *string `json:"comments"`
	CorrectiveAction *string `json:"correctiveAction"`
	PreventiveAction *string `json:"preventiveAction"`

	PlannedCloseDate      *time.Time `json:"plannedCloseDate"`
	ClearPlannedCloseDate bool       `json:"clearPlannedCloseDate"`
	ActualCloseDate       *time.Time `json:"actualCloseDate"`
	ClearActualCloseDate  bool       `json:"clearActualCloseDate"`

	Status *string `json:"status"`
	Origin *string `json:"origin"`
}

func (req *updateEventRequest) toPatch() (*model.EventPatch, error) {
	patch := &model.EventPatch{
		ImpactType:            req.ImpactType,
		Cause:                 req.Cause,
		ProjectNumber:         req.ProjectNumber,
		PartNumber:            req.PartNumber,
		Comments:              req.Comments,
		CorrectiveAction:      req.CorrectiveAction,
		PreventiveAction:      req.PreventiveAction,
		PlannedCloseDate:      req.PlannedCloseDate,
		ClearPlannedCloseDate: req.ClearPlannedCloseDate,
		ActualCloseDate:       req.ActualCloseDate,
		ClearActualCloseDate:  req.ClearActualCloseDate,
	}

	if req.AssignedTo != nil {
		p := types.PersonID(*req.AssignedTo)
		patch.AssignedTo = &p
	}
	if req.Status != nil {
		status, err := types.ParseEventStatus(*req.Status)
		if err != nil {
			return nil, goerr.Wrap(model.ErrValidation, "invalid status",
				goerr.V("value", *req.Status))
		}
		patch.Status = &status
	}
	if req.Origin != nil {
		origin, err := types.ParseEventOrigin(*req.Origin)
		if err != nil {
			return nil, goerr.Wrap(model.ErrValidation, "invalid origin",
				goerr.V("value", *req.Origin))
		}
		patch.Origin = &origin
	}

	return patch, nil
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := types.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(ctx, w, goerr.Wrap(model.ErrValidation, "invalid event ID"))
		return
	}

	var req updateEventRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	updated, err := s.uc.Event.Update(ctx, id, patch)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toEventResponse(updated))
}

type changeStatusRequest struct {
	Status          string     `json:"status"`
	ActualCloseDate *time.Time `json:"actualCloseDate"`
}

func (s *Server) changeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := types.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(ctx, w, goerr.Wrap(model.ErrValidation, "invalid event ID"))
		return
	}

	var req changeStatusRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	status, err := types.ParseEventStatus(req.Status)
	if err != nil {
		respondError(ctx, w, goerr.Wrap(model.ErrValidation, "invalid status",
			goerr.V("value", req.Status)))
		return
	}

	updated, err := s.uc.Event.ChangeStatus(ctx, id, status, req.ActualCloseDate)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toEventResponse(updated))
}
