package costtable

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed cpl.yaml
var embedded []byte

type locationEntry struct {
	Default        int            `yaml:"default"`
	Configurations map[string]int `yaml:"configurations"`
}

type document struct {
	DefaultCPL int                      `yaml:"default_cpl"`
	Locations  map[string]locationEntry `yaml:"locations"`
}

// Table maps (location, configuration) to a base cost per lead in rupees.
// It is read-only after construction and safe for concurrent use.
type Table struct {
	def  int
	locs map[string]locationEntry
}

// Default returns the table shipped with the binary.
func Default() (*Table, error) { return Parse(embedded) }

// Load reads a table from path; an empty path yields the embedded table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cost table: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse cost table: %w", err)
	}
	if doc.DefaultCPL <= 0 {
		return nil, errors.New("cost table: default_cpl must be positive")
	}
	locs := make(map[string]locationEntry, len(doc.Locations))
	for name, e := range doc.Locations {
		if e.Default <= 0 {
			e.Default = doc.DefaultCPL
		}
		cfgs := make(map[string]int, len(e.Configurations))
		for c, v := range e.Configurations {
			if v <= 0 {
				return nil, fmt.Errorf("cost table: %s/%s: cpl must be positive", name, c)
			}
			cfgs[key(c)] = v
		}
		e.Configurations = cfgs
		locs[key(name)] = e
	}
	return &Table{def: doc.DefaultCPL, locs: locs}, nil
}

// Lookup reports the exact entry for the pair, if present.
func (t *Table) Lookup(location, configuration string) (int, bool) {
	e, ok := t.locs[key(location)]
	if !ok {
		return 0, false
	}
	v, ok := e.Configurations[key(configuration)]
	return v, ok
}

// CPL always answers: exact pair, then the location default, then the
// table-wide default.
func (t *Table) CPL(location, configuration string) int {
	e, ok := t.locs[key(location)]
	if !ok {
		return t.def
	}
	if v, ok := e.Configurations[key(configuration)]; ok {
		return v
	}
	return e.Default
}

func (t *Table) Len() int { return len(t.locs) }

func key(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
