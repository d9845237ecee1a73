package config_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/opsfloor/opevents/pkg/domain/model/config"
	"github.com/pelletier/go-toml/v2"
)

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog config.Catalog
		wantErr error
	}{
		{
			name: "valid catalog",
			catalog: config.Catalog{
				Impacts: []config.ImpactEntry{
					{
						Label:  "Retrabajo",
						Active: true,
						Causes: []config.CauseEntry{
							{Label: "Error de ensamble", Active: true},
							{Label: "Defecto de material", Active: false},
						},
					},
				},
			},
		},
		{
			name: "missing impact label",
			catalog: config.Catalog{
				Impacts: []config.ImpactEntry{
					{Label: "  ", Active: true},
				},
			},
			wantErr: config.ErrMissingLabel,
		},
		{
			name: "missing cause label",
			catalog: config.Catalog{
				Impacts: []config.ImpactEntry{
					{
						Label:  "Retrabajo",
						Active: true,
						Causes: []config.CauseEntry{{Label: ""}},
					},
				},
			},
			wantErr: config.ErrMissingLabel,
		},
		{
			name: "duplicate impact labels differing only by case",
			catalog: config.Catalog{
				Impacts: []config.ImpactEntry{
					{Label: "Retrabajo", Active: true},
					{Label: "RETRABAJO", Active: true},
				},
			},
			wantErr: config.ErrDuplicateImpact,
		},
		{
			name: "duplicate cause labels under one impact",
			catalog: config.Catalog{
				Impacts: []config.ImpactEntry{
					{
						Label:  "Retrabajo",
						Active: true,
						Causes: []config.CauseEntry{
							{Label: "Error de ensamble", Active: true},
							{Label: "error de ensamble ", Active: true},
						},
					},
				},
			},
			wantErr: config.ErrDuplicateCause,
		},
		{
			name: "same cause under different impacts is allowed",
			catalog: config.Catalog{
				Impacts: []config.ImpactEntry{
					{
						Label:  "Retrabajo",
						Active: true,
						Causes: []config.CauseEntry{{Label: "Falta de material", Active: true}},
					},
					{
						Label:  "Paro de Ensamble",
						Active: true,
						Causes: []config.CauseEntry{{Label: "Falta de material", Active: true}},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.wantErr == nil {
				gt.NoError(t, err)
			} else {
				gt.B(t, errors.Is(err, tt.wantErr)).True()
			}
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	cfg := config.DefaultCatalog()
	gt.NoError(t, cfg.Validate())
	gt.A(t, cfg.Impacts).Length(4)

	for _, imp := range cfg.Impacts {
		gt.B(t, imp.Active).Describef("impact %s should be active", imp.Label).True()
		gt.Number(t, len(imp.Causes)).Greater(0)
	}
}

func TestCatalogTOMLRoundTrip(t *testing.T) {
	data := []byte(`
[[impact]]
label = "Retrabajo"
active = true

  [[impact.cause]]
  label = "Error de ensamble"
  active = true

  [[impact.cause]]
  label = "Defecto de material"
  active = false
`)

	var cfg config.Catalog
	gt.NoError(t, toml.Unmarshal(data, &cfg)).Required()

	gt.A(t, cfg.Impacts).Length(1)
	gt.V(t, cfg.Impacts[0].Label).Equal("Retrabajo")
	gt.A(t, cfg.Impacts[0].Causes).Length(2)
	gt.B(t, cfg.Impacts[0].Causes[1].Active).False()
}
