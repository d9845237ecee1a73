package catalog

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/domain/model/config"
	"github.com/pelletier/go-toml/v2"
)

// Load reads the catalog from a TOML file. When the file does not exist the
// factory defaults are installed and written back, matching the first-run
// behavior of the settings surface. The in-memory store is the source of
// truth for the rest of the process lifetime.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from CLI configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s, err := NewFromConfig(config.DefaultCatalog())
			if err != nil {
				return nil, err
			}
			if err := s.Save(path); err != nil {
				return nil, goerr.Wrap(err, "failed to write default catalog",
					goerr.V("path", path))
			}
			return s, nil
		}
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", path))
	}

	var cfg config.Catalog
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog file", goerr.V("path", path))
	}

	return NewFromConfig(&cfg)
}

// Save writes the current catalog, including inactive entries, to a TOML
// file.
func (s *Store) Save(path string) error {
	data, err := toml.Marshal(s.Snapshot())
	if err != nil {
		return goerr.Wrap(err, "failed to encode catalog")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write catalog file", goerr.V("path", path))
	}
	return nil
}
