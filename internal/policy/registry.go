package policy

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultPolicies []byte

// ErrUnknownYear is returned when no policy set is in force for a year.
var ErrUnknownYear = errors.New("no policy set in force for year")

// Document is the on-disk layout of a policy file.
type Document struct {
	Policies []Set `yaml:"policies"`
}

// Registry maps effective years to policy sets. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	sets []*Set // ascending by year
}

// NewRegistry compiles the sets. A later set with the same year replaces an
// earlier one.
func NewRegistry(sets ...Set) (*Registry, error) {
	byYear := make(map[int]*Set, len(sets))
	for i := range sets {
		s := sets[i]
		if err := s.compile(); err != nil {
			return nil, err
		}
		byYear[s.Year] = &s
	}
	if len(byYear) == 0 {
		return nil, errors.New("policy registry needs at least one year")
	}

	r := &Registry{sets: make([]*Set, 0, len(byYear))}
	for _, s := range byYear {
		r.sets = append(r.sets, s)
	}
	sort.Slice(r.sets, func(i, j int) bool { return r.sets[i].Year < r.sets[j].Year })
	return r, nil
}

// Decode reads a policy document.
func Decode(reader io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("failed to parse policy document: %w", err)
	}
	return doc, nil
}

// DefaultSets returns the embedded policy sets.
func DefaultSets() ([]Set, error) {
	var doc Document
	if err := yaml.Unmarshal(defaultPolicies, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse embedded policies: %w", err)
	}
	return doc.Policies, nil
}

// Defaults returns a registry of the embedded policy sets.
func Defaults() (*Registry, error) {
	sets, err := DefaultSets()
	if err != nil {
		return nil, err
	}
	return NewRegistry(sets...)
}

// Load builds a registry from the embedded defaults overlaid with the sets in
// path. An empty path yields the defaults.
func Load(path string) (*Registry, error) {
	sets, err := DefaultSets()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return NewRegistry(sets...)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open policy file: %w", err)
	}
	sets, err = Overlay(sets, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewRegistry(sets...)
}

// Overlay applies the sets of a policy document on top of base. Each entry
// starts from the base set of the same year, or from the newest earlier one
// when its year is new, so a file only has to list the constants it changes.
func Overlay(base []Set, data []byte) ([]Set, error) {
	if _, err := Decode(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	var doc struct {
		Policies []yaml.Node `yaml:"policies"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse policy document: %w", err)
	}

	out := append([]Set(nil), base...)
	for i := range doc.Policies {
		node := &doc.Policies[i]
		var key struct {
			Year int `yaml:"year"`
		}
		if err := node.Decode(&key); err != nil {
			return nil, fmt.Errorf("failed to parse policy document: %w", err)
		}

		idx, from := -1, -1
		for j, s := range out {
			switch {
			case s.Year == key.Year:
				idx = j
			case s.Year < key.Year && (from < 0 || s.Year > out[from].Year):
				from = j
			}
		}
		var set Set
		switch {
		case idx >= 0:
			set = out[idx]
		case from >= 0:
			set = out[from]
		}
		set.Unemployment.BenefitDays = maps.Clone(set.Unemployment.BenefitDays)
		set.GiftTax.Exemptions = maps.Clone(set.GiftTax.Exemptions)

		if err := node.Decode(&set); err != nil {
			return nil, fmt.Errorf("failed to parse policy %d: %w", key.Year, err)
		}
		if idx >= 0 {
			out[idx] = set
		} else {
			out = append(out, set)
		}
	}
	return out, nil
}

// ForYear returns the newest set whose effective year is not after year.
func (r *Registry) ForYear(year int) (*Set, error) {
	idx := sort.Search(len(r.sets), func(i int) bool { return r.sets[i].Year > year })
	if idx == 0 {
		return nil, fmt.Errorf("%w %d", ErrUnknownYear, year)
	}
	return r.sets[idx-1], nil
}

// Exact returns the set published for exactly year.
func (r *Registry) Exact(year int) (*Set, error) {
	for _, s := range r.sets {
		if s.Year == year {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w %d", ErrUnknownYear, year)
}

// Latest returns the newest set.
func (r *Registry) Latest() *Set {
	return r.sets[len(r.sets)-1]
}

// Years lists the effective years in ascending order.
func (r *Registry) Years() []int {
	years := make([]int, len(r.sets))
	for i, s := range r.sets {
		years[i] = s.Year
	}
	return years
}
