package http

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/domain/model"
)

// urlParam decodes a path segment that may contain spaces or accents, as
// catalog labels do.
func urlParam(r *http.Request, key string) (string, error) {
	raw := chi.URLParam(r, key)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", goerr.Wrap(model.ErrValidation, "invalid path parameter",
			goerr.V("param", key))
	}
	return decoded, nil
}

type catalogResponse struct {
	Version uint64              `json:"version"`
	Impacts []catalogImpactItem `json:"impacts"`
}

type catalogImpactItem struct {
	Label  string             `json:"label"`
	Active bool               `json:"active"`
	Causes []catalogCauseItem `json:"causes"`
}

type catalogCauseItem struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshot, version := s.uc.Catalog.Snapshot(ctx)

	out := catalogResponse{Version: version, Impacts: []catalogImpactItem{}}
	for _, imp := range snapshot.Impacts {
		item := catalogImpactItem{Label: imp.Label, Active: imp.Active, Causes: []catalogCauseItem{}}
		for _, c := range imp.Causes {
			item.Causes = append(item.Causes, catalogCauseItem{Label: c.Label, Active: c.Active})
		}
		out.Impacts = append(out.Impacts, item)
	}

	respondJSON(ctx, w, http.StatusOK, out)
}

func (s *Server) listImpactTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	respondJSON(ctx, w, http.StatusOK, s.uc.Catalog.ListImpactTypes(ctx))
}

func (s *Server) listCauses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	impactType, err := urlParam(r, "impactType")
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	causes, err := s.uc.Catalog.ListCauses(ctx, impactType)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, causes)
}

type addImpactTypeRequest struct {
	Label string `json:"label"`
}

func (s *Server) addImpactType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addImpactTypeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := s.uc.Catalog.AddImpactType(ctx, req.Label); err != nil {
		respondError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addCauseRequest struct {
	Label  string `json:"label"`
	Active *bool  `json:"active"`
}

func (s *Server) addCause(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	impactType, err := urlParam(r, "impactType")
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req addCauseRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	if err := s.uc.Catalog.AddCause(ctx, impactType, req.Label, active); err != nil {
		respondError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deactivateImpactType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	impactType, err := urlParam(r, "impactType")
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := s.uc.Catalog.DeactivateImpactType(ctx, impactType); err != nil {
		respondError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deactivateCause(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	impactType, err := urlParam(r, "impactType")
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	cause, err := urlParam(r, "cause")
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := s.uc.Catalog.DeactivateCause(ctx, impactType, cause); err != nil {
		respondError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
