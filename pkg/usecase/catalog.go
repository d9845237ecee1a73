package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/catalog"
	"github.com/opsfloor/opevents/pkg/domain/model/config"
	"github.com/opsfloor/opevents/pkg/utils/logging"
)

// CatalogUseCase exposes the administrator operations over the impact/cause
// catalog. Mutations are applied to the in-memory store first and then
// persisted to the catalog file; the store stays authoritative even if the
// file write fails.
type CatalogUseCase struct {
	store *catalog.Store
	path  string
}

func NewCatalogUseCase(store *catalog.Store) *CatalogUseCase {
	return &CatalogUseCase{store: store}
}

// SetPersistPath enables write-through persistence to the catalog file
func (uc *CatalogUseCase) SetPersistPath(path string) {
	uc.path = path
}

// ListImpactTypes returns the selectable impact type labels
func (uc *CatalogUseCase) ListImpactTypes(ctx context.Context) []string {
	return uc.store.ListActiveImpactTypes()
}

// ListCauses returns the selectable causes for an impact type
func (uc *CatalogUseCase) ListCauses(ctx context.Context, impactType string) ([]string, error) {
	return uc.store.ListActiveCauses(impactType)
}

// Snapshot returns the full catalog, inactive entries included, with the
// current version
func (uc *CatalogUseCase) Snapshot(ctx context.Context) (*config.Catalog, uint64) {
	return uc.store.Snapshot(), uc.store.Version()
}

// AddImpactType adds or reactivates an impact type
func (uc *CatalogUseCase) AddImpactType(ctx context.Context, label string) error {
	if err := uc.store.UpsertImpactType(label); err != nil {
		return err
	}
	return uc.persist(ctx)
}

// AddCause adds or updates a cause under an impact type
func (uc *CatalogUseCase) AddCause(ctx context.Context, impactType, causeLabel string, active bool) error {
	if err := uc.store.UpsertCause(impactType, causeLabel, active); err != nil {
		return err
	}
	return uc.persist(ctx)
}

// RenameImpactType renames an impact type, preserving its causes
func (uc *CatalogUseCase) RenameImpactType(ctx context.Context, oldLabel, newLabel string) error {
	if err := uc.store.RenameImpactType(oldLabel, newLabel); err != nil {
		return err
	}
	return uc.persist(ctx)
}

// RenameCause renames a cause within an impact type
func (uc *CatalogUseCase) RenameCause(ctx context.Context, impactType, oldLabel, newLabel string) error {
	if err := uc.store.RenameCause(impactType, oldLabel, newLabel); err != nil {
		return err
	}
	return uc.persist(ctx)
}

// DeactivateImpactType soft-deactivates an impact type. Events referencing
// it keep their label; it just disappears from selection lists.
func (uc *CatalogUseCase) DeactivateImpactType(ctx context.Context, label string) error {
	if err := uc.store.DeactivateImpactType(label); err != nil {
		return err
	}
	return uc.persist(ctx)
}

// DeactivateCause soft-deactivates a cause
func (uc *CatalogUseCase) DeactivateCause(ctx context.Context, impactType, causeLabel string) error {
	if err := uc.store.DeactivateCause(impactType, causeLabel); err != nil {
		return err
	}
	return uc.persist(ctx)
}

func (uc *CatalogUseCase) persist(ctx context.Context) error {
	if uc.path == "" {
		return nil
	}
	if err := uc.store.Save(uc.path); err != nil {
		return goerr.Wrap(err, "failed to persist catalog", goerr.V("path", uc.path))
	}
	logging.From(ctx).Debug("catalog persisted",
		"path", uc.path,
		"version", uc.store.Version(),
	)
	return nil
}
