package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/catalog"
	"github.com/opsfloor/opevents/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Catalog holds CLI flags for the impact/cause catalog file
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog-path",
			Usage:       "Path to the impact/cause catalog TOML file",
			Category:    "Catalog",
			Value:       "catalog.toml",
			Sources:     cli.EnvVars("OPEVENTS_CATALOG_PATH"),
			Destination: &x.path,
		},
	}
}

// Path returns the configured catalog file path
func (x *Catalog) Path() string {
	return x.path
}

// Configure loads the catalog store from the configured file, installing
// the factory defaults when the file does not exist yet.
func (x *Catalog) Configure() (*catalog.Store, error) {
	store, err := catalog.Load(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load catalog", goerr.V("path", x.path))
	}

	logging.Default().Info("Catalog loaded",
		"path", x.path,
		"impact_types", len(store.Snapshot().Impacts),
	)
	return store, nil
}
