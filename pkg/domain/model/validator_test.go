package model_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/opsfloor/opevents/pkg/catalog"
	"github.com/opsfloor/opevents/pkg/domain/model"
	"github.com/opsfloor/opevents/pkg/domain/model/config"
	"github.com/opsfloor/opevents/pkg/domain/types"
)

func newTestCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.NewFromConfig(config.DefaultCatalog())
	gt.NoError(t, err).Required()
	return store
}

func validDraft() *model.EventDraft {
	return &model.EventDraft{
		DetectedBy:    "U100",
		ImpactType:    "Retrabajo",
		Cause:         "Error de ensamble",
		ProjectNumber: "PRJ-001",
		PartNumber:    "PN-100-A",
		AssignedTo:    "U200",
		Comments:      "Detectado en estación 4",
	}
}

func TestValidateForCreate(t *testing.T) {
	fixedNow := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	newValidator := func(t *testing.T) *model.Validator {
		return model.NewValidator(newTestCatalog(t),
			model.WithClock(func() time.Time { return fixedNow }))
	}

	t.Run("valid draft yields an open record with assigned detection time", func(t *testing.T) {
		v := newValidator(t)

		e, err := v.ValidateForCreate(validDraft())
		gt.NoError(t, err).Required()

		gt.V(t, e.Status).Equal(types.EventStatusOpen)
		gt.B(t, e.DetectedAt.Equal(fixedNow)).True()
		gt.V(t, e.ImpactType).Equal("Retrabajo")
		gt.V(t, e.Cause).Equal("Error de ensamble")
		gt.V(t, e.DetectedBy).Equal(types.PersonID("U100"))
		gt.V(t, e.AssignedTo).Equal(types.PersonID("U200"))
	})

	t.Run("text fields are trimmed before validation", func(t *testing.T) {
		v := newValidator(t)

		draft := validDraft()
		draft.ImpactType = "  Retrabajo  "
		draft.ProjectNumber = " PRJ-001 "
		draft.Comments = "  nota  "

		e, err := v.ValidateForCreate(draft)
		gt.NoError(t, err).Required()

		gt.V(t, e.ImpactType).Equal("Retrabajo")
		gt.V(t, e.ProjectNumber).Equal("PRJ-001")
		gt.V(t, e.Comments).Equal("nota")
	})

	t.Run("nil draft is rejected", func(t *testing.T) {
		v := newValidator(t)

		_, err := v.ValidateForCreate(nil)
		gt.B(t, errors.Is(err, model.ErrValidation)).True()
	})

	t.Run("required fields", func(t *testing.T) {
		mutations := map[string]func(*model.EventDraft){
			"detectedBy":    func(d *model.EventDraft) { d.DetectedBy = "" },
			"impactType":    func(d *model.EventDraft) { d.ImpactType = "" },
			"cause":         func(d *model.EventDraft) { d.Cause = "" },
			"projectNumber": func(d *model.EventDraft) { d.ProjectNumber = "" },
			"partNumber":    func(d *model.EventDraft) { d.PartNumber = "" },
			"assignedTo":    func(d *model.EventDraft) { d.AssignedTo = "" },
		}

		for field, mutate := range mutations {
			t.Run(field, func(t *testing.T) {
				v := newValidator(t)
				draft := validDraft()
				mutate(draft)

				_, err := v.ValidateForCreate(draft)
				gt.B(t, errors.Is(err, model.ErrMissingRequired)).True()
			})
		}
	})

	t.Run("whitespace only counts as missing", func(t *testing.T) {
		v := newValidator(t)
		draft := validDraft()
		draft.PartNumber = "   "

		_, err := v.ValidateForCreate(draft)
		gt.B(t, errors.Is(err, model.ErrMissingRequired)).True()
	})

	t.Run("comments are optional", func(t *testing.T) {
		v := newValidator(t)
		draft := validDraft()
		draft.Comments = ""

		_, err := v.ValidateForCreate(draft)
		gt.NoError(t, err)
	})

	t.Run("field length limits", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*model.EventDraft)
			ok     bool
		}{
			{
				name:   "project number at limit",
				mutate: func(d *model.EventDraft) { d.ProjectNumber = strings.Repeat("a", 10) },
				ok:     true,
			},
			{
				name:   "project number over limit",
				mutate: func(d *model.EventDraft) { d.ProjectNumber = strings.Repeat("a", 11) },
				ok:     false,
			},
			{
				name:   "part number at limit",
				mutate: func(d *model.EventDraft) { d.PartNumber = strings.Repeat("b", 15) },
				ok:     true,
			},
			{
				name:   "part number over limit",
				mutate: func(d *model.EventDraft) { d.PartNumber = strings.Repeat("b", 16) },
				ok:     false,
			},
			{
				name:   "comments at limit",
				mutate: func(d *model.EventDraft) { d.Comments = strings.Repeat("c", 300) },
				ok:     true,
			},
			{
				name:   "comments over limit",
				mutate: func(d *model.EventDraft) { d.Comments = strings.Repeat("c", 301) },
				ok:     false,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				v := newValidator(t)
				draft := validDraft()
				tt.mutate(draft)

				_, err := v.ValidateForCreate(draft)
				if tt.ok {
					gt.NoError(t, err)
				} else {
					gt.B(t, errors.Is(err, model.ErrFieldTooLong)).True()
				}
			})
		}
	})

	t.Run("unknown impact type is rejected", func(t *testing.T) {
		v := newValidator(t)
		draft := validDraft()
		draft.ImpactType = "No existe"

		_, err := v.ValidateForCreate(draft)
		gt.B(t, errors.Is(err, model.ErrInvalidImpactType)).True()
	})

	t.Run("cause under a different impact type is rejected", func(t *testing.T) {
		v := newValidator(t)
		draft := validDraft()
		draft.Cause = "Error en MRP" // belongs to Falta de Material

		_, err := v.ValidateForCreate(draft)
		gt.B(t, errors.Is(err, model.ErrInvalidCause)).True()
	})

	t.Run("deactivated cause is rejected", func(t *testing.T) {
		store := newTestCatalog(t)
		gt.NoError(t, store.DeactivateCause("Retrabajo", "Error de ensamble"))

		v := model.NewValidator(store)
		_, err := v.ValidateForCreate(validDraft())
		gt.B(t, errors.Is(err, model.ErrInvalidCause)).True()
	})

	t.Run("deactivated impact type is rejected", func(t *testing.T) {
		store := newTestCatalog(t)
		gt.NoError(t, store.DeactivateImpactType("Retrabajo"))

		v := model.NewValidator(store)
		_, err := v.ValidateForCreate(validDraft())
		gt.B(t, errors.Is(err, model.ErrInvalidImpactType)).True()
	})

	t.Run("catalog edits apply to the next validation", func(t *testing.T) {
		store := newTestCatalog(t)
		v := model.NewValidator(store)

		_, err := v.ValidateForCreate(validDraft())
		gt.NoError(t, err)

		gt.NoError(t, store.DeactivateCause("Retrabajo", "Error de ensamble"))

		_, err = v.ValidateForCreate(validDraft())
		gt.B(t, errors.Is(err, model.ErrInvalidCause)).True()
	})
}

func existingEvent(status types.EventStatus) *model.Event {
	detected := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	return &model.Event{
		ID:            1,
		DetectedBy:    "U100",
		ImpactType:    "Retrabajo",
		Cause:         "Error de ensamble",
		ProjectNumber: "PRJ-001",
		PartNumber:    "PN-100-A",
		AssignedTo:    "U200",
		Status:        status,
		DetectedAt:    detected,
	}
}

func strptr(s string) *string { return &s }

func TestValidateForUpdate(t *testing.T) {
	newValidator := func(t *testing.T) *model.Validator {
		return model.NewValidator(newTestCatalog(t))
	}

	t.Run("nil patch yields an equal copy", func(t *testing.T) {
		v := newValidator(t)
		existing := existingEvent(types.EventStatusOpen)

		merged, err := v.ValidateForUpdate(existing, nil)
		gt.NoError(t, err).Required()

		gt.V(t, merged).Equal(existing)
		gt.B(t, merged == existing).False()
	})

	t.Run("empty patch yields an equal copy", func(t *testing.T) {
		v := newValidator(t)
		existing := existingEvent(types.EventStatusOpen)

		merged, err := v.ValidateForUpdate(existing, &model.EventPatch{})
		gt.NoError(t, err).Required()
		gt.V(t, merged).Equal(existing)
	})

	t.Run("patch never mutates the existing record", func(t *testing.T) {
		v := newValidator(t)
		existing := existingEvent(types.EventStatusOpen)

		_, err := v.ValidateForUpdate(existing, &model.EventPatch{
			Comments: strptr("nuevo comentario"),
		})
		gt.NoError(t, err).Required()
		gt.V(t, existing.Comments).Equal("")
	})

	t.Run("text fields are merged and trimmed", func(t *testing.T) {
		v := newValidator(t)
		existing := existingEvent(types.EventStatusOpen)

		merged, err := v.ValidateForUpdate(existing, &model.EventPatch{
			CorrectiveAction: strptr("  Reentrenar al operador  "),
			PreventiveAction: strptr("Actualizar instrucción de trabajo"),
		})
		gt.NoError(t, err).Required()

		gt.V(t, merged.CorrectiveAction).Equal("Reentrenar al operador")
		gt.V(t, merged.PreventiveAction).Equal("Actualizar instrucción de trabajo")
		gt.V(t, merged.ImpactType).Equal(existing.ImpactType)
	})

	t.Run("action text length limits", func(t *testing.T) {
		v := newValidator(t)
		existing := existingEvent(types.EventStatusOpen)

		_, err := v.ValidateForUpdate(existing, &model.EventPatch{
			CorrectiveAction: strptr(strings.Repeat("x", 301)),
		})
		gt.B(t, errors.Is(err, model.ErrFieldTooLong)).True()

		_, err = v.ValidateForUpdate(existing, &model.EventPatch{
			PreventiveAction: strptr(strings.Repeat("x", 300)),
		})
		gt.NoError(t, err)
	})

	t.Run("required patch field cannot be blanked", func(t *testing.T) {
		v := newValidator(t)
		existing := existingEvent(types.EventStatusOpen)

		_, err := v.ValidateForUpdate(existing, &model.EventPatch{
			ProjectNumber: strptr("   "),
		})
		gt.B(t, errors.Is(err, model.ErrMissingRequired)).True()
	})

	t.Run("changing impact type revalidates the pair", func(t *testing.T) {
		v := newValidator(t)
		existing := existingEvent(types.EventStatusOpen)

		// Existing cause does not belong to the new impact type
		_, err := v.ValidateForUpdate(existing, &model.EventPatch{
			ImpactType: strptr("Falta de Material"),
		})
		gt.B(t, errors.Is(err, model.ErrInvalidCause)).True()

		// Patching both sides to a consistent pair succeeds
		merged, err := v.ValidateForUpdate(existing, &model.EventPatch{
			ImpactType: strptr("Falta de Material"),
			Cause:      strptr("Error en MRP"),
		})
		gt.NoError(t, err).Required()
		gt.V(t, merged.ImpactType).Equal("Falta de Material")
		gt.V(t, merged.Cause).Equal("Error en MRP")
	})

	t.Run("changing cause alone revalidates against current impact type", func(t *testing.T) {
		v := newValidator(t)
		existing := existingEvent(types.EventStatusOpen)

		_, err := v.ValidateForUpdate(existing, &model.EventPatch{
			Cause: strptr("Retraso de proveedor"),
		})
		gt.B(t, errors.Is(err, model.ErrInvalidCause)).True()

		merged, err := v.ValidateForUpdate(existing, &model.EventPatch{
			Cause: strptr("Defecto de material"),
		})
		gt.NoError(t, err).Required()
		gt.V(t, merged.Cause).Equal("Defecto de material")
	})

	t.Run("untouched pair is not revalidated", func(t *testing.T) {
		store := newTestCatalog(t)
		gt.NoError(t, store.DeactivateCause("Retrabajo", "Error de ensamble"))

		// A record captured before the deactivation keeps its label and can
		// still receive unrelated edits.
		v := model.NewValidator(store)
		existing := existingEvent(types.EventStatusOpen)

		merged, err := v.ValidateForUpdate(existing, &model.EventPatch{
			Comments: strptr("seguimiento"),
		})
		gt.NoError(t, err).Required()
		gt.V(t, merged.Cause).Equal("Error de ensamble")
	})

	t.Run("invalid origin value", func(t *testing.T) {
		v := newValidator(t)
		existing := existingEvent(types.EventStatusOpen)

		bad := types.EventOrigin("EXTERNAL")
		_, err := v.ValidateForUpdate(existing, &model.EventPatch{Origin: &bad})
		gt.B(t, errors.Is(err, model.ErrValidation)).True()
	})

	t.Run("origin can be assigned", func(t *testing.T) {
		v := newValidator(t)
		existing := existingEvent(types.EventStatusOpen)

		origin := types.EventOriginSupplier
		merged, err := v.ValidateForUpdate(existing, &model.EventPatch{Origin: &origin})
		gt.NoError(t, err).Required()
		gt.V(t, merged.Origin).Equal(types.EventOriginSupplier)
	})

	t.Run("closure coupling", func(t *testing.T) {
		closeDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		t.Run("close date without closed status is rejected", func(t *testing.T) {
			v := newValidator(t)
			existing := existingEvent(types.EventStatusOpen)

			_, err := v.ValidateForUpdate(existing, &model.EventPatch{
				ActualCloseDate: &closeDate,
			})
			gt.B(t, errors.Is(err, model.ErrInvalidClosureState)).True()
		})

		t.Run("closing with a date in the same patch succeeds", func(t *testing.T) {
			v := newValidator(t)
			existing := existingEvent(types.EventStatusOpen)

			status := types.EventStatusClosed
			merged, err := v.ValidateForUpdate(existing, &model.EventPatch{
				Status:          &status,
				ActualCloseDate: &closeDate,
			})
			gt.NoError(t, err).Required()
			gt.V(t, merged.Status).Equal(types.EventStatusClosed)
			gt.B(t, merged.ActualCloseDate.Equal(closeDate)).True()
		})

		t.Run("closing without any date is rejected", func(t *testing.T) {
			v := newValidator(t)
			existing := existingEvent(types.EventStatusOpen)

			status := types.EventStatusClosed
			_, err := v.ValidateForUpdate(existing, &model.EventPatch{
				Status: &status,
			})
			gt.B(t, errors.Is(err, model.ErrMissingCloseDate)).True()
		})

		t.Run("closing with a pre-existing date succeeds", func(t *testing.T) {
			v := newValidator(t)
			existing := existingEvent(types.EventStatusOpen)
			existing.ActualCloseDate = &closeDate

			status := types.EventStatusClosed
			merged, err := v.ValidateForUpdate(existing, &model.EventPatch{
				Status: &status,
			})
			gt.NoError(t, err).Required()
			gt.B(t, merged.ActualCloseDate.Equal(closeDate)).True()
		})

		t.Run("leaving closed status without clearing the date is rejected", func(t *testing.T) {
			v := newValidator(t)
			existing := existingEvent(types.EventStatusClosed)
			existing.ActualCloseDate = &closeDate

			status := types.EventStatusOpen
			_, err := v.ValidateForUpdate(existing, &model.EventPatch{
				Status: &status,
			})
			gt.B(t, errors.Is(err, model.ErrInvalidClosureState)).True()
		})

		t.Run("leaving closed status with the date cleared succeeds", func(t *testing.T) {
			v := newValidator(t)
			existing := existingEvent(types.EventStatusClosed)
			existing.ActualCloseDate = &closeDate

			status := types.EventStatusOpen
			merged, err := v.ValidateForUpdate(existing, &model.EventPatch{
				Status:               &status,
				ClearActualCloseDate: true,
			})
			gt.NoError(t, err).Required()
			gt.V(t, merged.Status).Equal(types.EventStatusOpen)
			gt.B(t, merged.ActualCloseDate == nil).True()
		})

		t.Run("clearing the date while staying closed is rejected", func(t *testing.T) {
			v := newValidator(t)
			existing := existingEvent(types.EventStatusClosed)
			existing.ActualCloseDate = &closeDate

			_, err := v.ValidateForUpdate(existing, &model.EventPatch{
				ClearActualCloseDate: true,
			})
			gt.B(t, errors.Is(err, model.ErrMissingCloseDate)).True()
		})
	})

	t.Run("planned close date can be set and cleared", func(t *testing.T) {
		v := newValidator(t)
		existing := existingEvent(types.EventStatusOpen)

		planned := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		merged, err := v.ValidateForUpdate(existing, &model.EventPatch{
			PlannedCloseDate: &planned,
		})
		gt.NoError(t, err).Required()
		gt.B(t, merged.PlannedCloseDate.Equal(planned)).True()

		merged2, err := v.ValidateForUpdate(merged, &model.EventPatch{
			ClearPlannedCloseDate: true,
		})
		gt.NoError(t, err).Required()
		gt.B(t, merged2.PlannedCloseDate == nil).True()
	})

	t.Run("nil existing record is rejected", func(t *testing.T) {
		v := newValidator(t)

		_, err := v.ValidateForUpdate(nil, &model.EventPatch{})
		gt.B(t, errors.Is(err, model.ErrValidation)).True()
	})
}
