package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/domain/interfaces"
)

// ReportUseCase computes the dashboard aggregations: Pareto by cause,
// monthly trend and top-N causes. All of it is plain grouping over the
// event list; the repository stays the single source of data.
type ReportUseCase struct {
	repo interfaces.Repository
}

func NewReportUseCase(repo interfaces.Repository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// ParetoRow is one bar of a Pareto chart
type ParetoRow struct {
	Cause      string  `json:"cause"`
	Count      int     `json:"count"`
	Percent    float64 `json:"percent"`
	Cumulative float64 `json:"cumulative"`
}

// Pareto counts events by cause within one impact type, sorted by count
// descending with cumulative percentages.
func (uc *ReportUseCase) Pareto(ctx context.Context, impactType string) ([]ParetoRow, error) {
	if strings.TrimSpace(impactType) == "" {
		return nil, goerr.New("impact type is required")
	}

	events, err := uc.repo.Event().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(ErrStorageUnavailable, "failed to list events",
			goerr.V("cause", err.Error()))
	}

	counts := make(map[string]int)
	total := 0
	for _, e := range events {
		if !strings.EqualFold(e.ImpactType, impactType) {
			continue
		}
		counts[e.Cause]++
		total++
	}

	rows := make([]ParetoRow, 0, len(counts))
	for cause, count := range counts {
		rows = append(rows, ParetoRow{Cause: cause, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Cause < rows[j].Cause
	})

	cumulative := 0.0
	for i := range rows {
		rows[i].Percent = float64(rows[i].Count) / float64(total) * 100
		cumulative += rows[i].Percent
		rows[i].Cumulative = cumulative
	}

	return rows, nil
}

// MonthlyCount is the number of events detected in one month
type MonthlyCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// MonthlyTrend buckets events by detection month, oldest first
func (uc *ReportUseCase) MonthlyTrend(ctx context.Context) ([]MonthlyCount, error) {
	events, err := uc.repo.Event().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(ErrStorageUnavailable, "failed to list events",
			goerr.V("cause", err.Error()))
	}

	counts := make(map[string]int)
	for _, e := range events {
		counts[e.DetectedAt.Format("2006-01")]++
	}

	months := make([]MonthlyCount, 0, len(counts))
	for month, count := range counts {
		months = append(months, MonthlyCount{Month: month, Count: count})
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})

	return months, nil
}

// CauseCount is an impact/cause pair with its event count
type CauseCount struct {
	ImpactType string `json:"impactType"`
	Cause      string `json:"cause"`
	Count      int    `json:"count"`
}

// TopCauses returns the most frequent impact/cause pairs across all events
func (uc *ReportUseCase) TopCauses(ctx context.Context, limit int) ([]CauseCount, error) {
	if limit <= 0 {
		limit = 5
	}

	events, err := uc.repo.Event().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(ErrStorageUnavailable, "failed to list events",
			goerr.V("cause", err.Error()))
	}

	type pair struct{ impact, cause string }
	counts := make(map[pair]int)
	for _, e := range events {
		counts[pair{e.ImpactType, e.Cause}]++
	}

	rows := make([]CauseCount, 0, len(counts))
	for p, count := range counts {
		rows = append(rows, CauseCount{ImpactType: p.impact, Cause: p.cause, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		if rows[i].ImpactType != rows[j].ImpactType {
			return rows[i].ImpactType < rows[j].ImpactType
		}
		return rows[i].Cause < rows[j].Cause
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
