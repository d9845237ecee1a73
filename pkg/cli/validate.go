package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/cli/config"
	"github.com/opsfloor/opevents/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the impact/cause catalog file",
		Flags:   catalogCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			store, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			snapshot := store.Snapshot()
			logger.Info("Catalog validation passed",
				"path", catalogCfg.Path(),
				"impact_types", len(snapshot.Impacts),
			)
			for _, imp := range snapshot.Impacts {
				activeCauses := 0
				for _, cause := range imp.Causes {
					if cause.Active {
						activeCauses++
					}
				}
				logger.Info("Impact type validated",
					"label", imp.Label,
					"active", imp.Active,
					"causes", len(imp.Causes),
					"active_causes", activeCauses,
				)
			}

			return nil
		},
	}
}
