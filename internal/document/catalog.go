package document

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned when a catalogue entry does not exist.
var ErrUnknownPreset = errors.New("unknown preset")

// Entry is one named set of transition options.
type Entry struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Options     OptionsDoc `json:"options" yaml:"options"`
}

type catalogFile struct {
	Presets []Entry `yaml:"presets"`
}

// Catalog is a read-only set of named option presets.
type Catalog struct {
	entries map[string]Entry
}

// ParseCatalog decodes a YAML catalogue. Later entries with the same name
// replace earlier ones.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{entries: make(map[string]Entry, len(file.Presets))}
	for i, e := range file.Presets {
		if e.Name == "" {
			return nil, fmt.Errorf("parse catalog: preset %d has no name", i)
		}
		c.entries[e.Name] = e
	}
	return c, nil
}

// LoadCatalog returns the built-in catalogue, overridden entry by entry by
// the file at path if path is not empty.
func LoadCatalog(path string) (*Catalog, error) {
	c, err := BuiltinCatalog()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	override, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	c.Merge(override)
	return c, nil
}

// Merge copies every entry of other into c, replacing same-named entries.
func (c *Catalog) Merge(other *Catalog) {
	for name, e := range other.entries {
		c.entries[name] = e
	}
}

// Get returns the entry called name.
func (c *Catalog) Get(name string) (Entry, error) {
	e, ok := c.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return e, nil
}

// Resolve starts from the named preset (or the defaults when preset is
// empty), applies patch, and returns the fully populated result.
func (c *Catalog) Resolve(preset string, patch *OptionsDoc) (OptionsDoc, error) {
	var doc OptionsDoc
	if preset != "" {
		e, err := c.Get(preset)
		if err != nil {
			return OptionsDoc{}, err
		}
		doc = e.Options
	}
	if patch != nil {
		doc = doc.Override(*patch)
	}
	return FromOptions(doc.ToOptions()), nil
}

// Names returns the entry names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Entries returns every entry sorted by name.
func (c *Catalog) Entries() []Entry {
	names := c.Names()
	out := make([]Entry, len(names))
	for i, name := range names {
		out[i] = c.entries[name]
	}
	return out
}
