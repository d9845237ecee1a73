package config

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// CauseEntry is one cause under an impact type in the catalog file
type CauseEntry struct {
	Label  string `toml:"label"`
	Active bool   `toml:"active"`
}

// ImpactEntry is one impact type and its causes in the catalog file
type ImpactEntry struct {
	Label  string       `toml:"label"`
	Active bool         `toml:"active"`
	Causes []CauseEntry `toml:"cause"`
}

// Catalog is the on-disk impact/cause catalog schema
type Catalog struct {
	Impacts []ImpactEntry `toml:"impact"`
}

// Validate checks if the CauseEntry is valid
func (c *CauseEntry) Validate() error {
	if strings.TrimSpace(c.Label) == "" {
		return goerr.Wrap(ErrMissingLabel, "cause label is required")
	}
	return nil
}

// Validate checks if the ImpactEntry is valid. Duplicate cause labels are
// compared case-insensitively so that ambiguous casing cannot create two
// logically identical entries.
func (i *ImpactEntry) Validate() error {
	if strings.TrimSpace(i.Label) == "" {
		return goerr.Wrap(ErrMissingLabel, "impact type label is required")
	}

	seen := make(map[string]bool)
	for _, c := range i.Causes {
		if err := c.Validate(); err != nil {
			return goerr.Wrap(err, "invalid cause", goerr.V(ImpactKey, i.Label))
		}
		key := strings.ToLower(strings.TrimSpace(c.Label))
		if seen[key] {
			return goerr.Wrap(ErrDuplicateCause, "duplicate cause label",
				goerr.V(ImpactKey, i.Label), goerr.V(CauseKey, c.Label))
		}
		seen[key] = true
	}
	return nil
}

// Validate checks if the Catalog is valid
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for _, imp := range c.Impacts {
		if err := imp.Validate(); err != nil {
			return goerr.Wrap(err, "invalid impact type")
		}
		key := strings.ToLower(strings.TrimSpace(imp.Label))
		if seen[key] {
			return goerr.Wrap(ErrDuplicateImpact, "duplicate impact type label",
				goerr.V(ImpactKey, imp.Label))
		}
		seen[key] = true
	}
	return nil
}
