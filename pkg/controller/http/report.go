package http

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/domain/model"
)

func (s *Server) paretoReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	impactType := r.URL.Query().Get("impactType")
	if impactType == "" {
		respondError(ctx, w, goerr.Wrap(model.ErrValidation, "impactType query parameter is required"))
		return
	}

	rows, err := s.uc.Report.Pareto(ctx, impactType)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, rows)
}

func (s *Server) monthlyReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	months, err := s.uc.Report.MonthlyTrend(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, months)
}

func (s *Server) topCausesReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respondError(ctx, w, goerr.Wrap(model.ErrValidation, "invalid limit",
				goerr.V("value", raw)))
			return
		}
		limit = v
	}

	rows, err := s.uc.Report.TopCauses(ctx, limit)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, rows)
}
