package usecase

import (
	"github.com/opsfloor/opevents/pkg/catalog"
	"github.com/opsfloor/opevents/pkg/domain/interfaces"
)

type UseCases struct {
	repo     interfaces.Repository
	notifier interfaces.Notifier

	Event   *EventUseCase
	Catalog *CatalogUseCase
	Report  *ReportUseCase
}

type Option func(*UseCases)

// WithNotifier enables the assignment notice after capture
func WithNotifier(n interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithLockTerminal locks non-status edits on closed and cancelled records
func WithLockTerminal(lock bool) Option {
	return func(uc *UseCases) {
		uc.Event.lockTerminal = lock
	}
}

func New(repo interfaces.Repository, store *catalog.Store, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	uc.Event = NewEventUseCase(repo, store)
	uc.Catalog = NewCatalogUseCase(store)
	uc.Report = NewReportUseCase(repo)

	for _, opt := range opts {
		opt(uc)
	}

	uc.Event.notifier = uc.notifier

	return uc
}
