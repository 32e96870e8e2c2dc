// Package registry holds the static calculator catalog: 52 clinical
// calculator definitions with their input specifications, closed-form
// compute functions, interpretation bands, pearls, and references.
//
// The registry is built once at process start and is read-only afterwards;
// unsynchronized concurrent reads are safe.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/units"
)

// Registry is the immutable calculator catalog with id and category indexes.
type Registry struct {
	ordered    []*domain.CalculatorDefinition
	byID       map[string]*domain.CalculatorDefinition
	byCategory map[domain.Category][]*domain.CalculatorDefinition
}

// New builds a registry from the given definitions, enforcing catalog
// integrity: unique ids, valid definitions, resolvable analyte conversions
// on every unit-toggling input. Definition order is preserved as the
// insertion order used by GetByCategory and Search.
func New(defs []*domain.CalculatorDefinition) (*Registry, error) {
	r := &Registry{
		ordered:    make([]*domain.CalculatorDefinition, 0, len(defs)),
		byID:       make(map[string]*domain.CalculatorDefinition, len(defs)),
		byCategory: make(map[domain.Category][]*domain.CalculatorDefinition),
	}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
		if _, exists := r.byID[def.ID]; exists {
			return nil, fmt.Errorf("registry: duplicate calculator id %q", def.ID)
		}
		for _, spec := range def.Inputs {
			if !spec.HasUnitToggle() {
				continue
			}
			if _, ok := units.ConversionFor(spec.Analyte); !ok {
				return nil, fmt.Errorf("registry: calculator %q input %q references unknown analyte %q",
					def.ID, spec.ID, spec.Analyte)
			}
		}
		r.ordered = append(r.ordered, def)
		r.byID[def.ID] = def
		r.byCategory[def.Category] = append(r.byCategory[def.Category], def)
	}
	return r, nil
}

// Default builds the full production catalog. It panics on an invalid
// definition: the catalog is static data, so a violation is a programming
// error that must fail startup.
func Default() *Registry {
	var defs []*domain.CalculatorDefinition
	defs = append(defs, kidneyFunctionDefs()...)
	defs = append(defs, acidBaseDefs()...)
	defs = append(defs, fluidsSodiumDefs()...)
	defs = append(defs, dialysisDefs()...)
	defs = append(defs, mineralBoneDefs()...)
	defs = append(defs, proteinuriaDefs()...)
	defs = append(defs, anthropometricsDefs()...)
	defs = append(defs, riskScoreDefs()...)
	defs = append(defs, labsLipidsDefs()...)

	r, err := New(defs)
	if err != nil {
		panic(fmt.Sprintf("building default calculator registry: %v", err))
	}
	return r
}

// GetByID returns the definition for the given calculator id.
func (r *Registry) GetByID(id string) (*domain.CalculatorDefinition, error) {
	def, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("calculator %q: %w", id, domain.ErrNotFound)
	}
	return def, nil
}

// GetByCategory returns the category's definitions in insertion order.
func (r *Registry) GetByCategory(category domain.Category) []*domain.CalculatorDefinition {
	defs := r.byCategory[category]
	out := make([]*domain.CalculatorDefinition, len(defs))
	copy(out, defs)
	return out
}

// ListCategories returns the sorted set of categories that have at least
// one calculator.
func (r *Registry) ListCategories() []domain.Category {
	cats := make([]domain.Category, 0, len(r.byCategory))
	for c := range r.byCategory {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// All returns every definition in insertion order.
func (r *Registry) All() []*domain.CalculatorDefinition {
	out := make([]*domain.CalculatorDefinition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the catalog size.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Search performs a case-insensitive substring match across name,
// description, and category. Name matches rank above description and
// category matches; insertion order is preserved among equal ranks. An
// empty or whitespace query returns no results. limit <= 0 means unlimited.
func (r *Registry) Search(query string, limit int) []*domain.CalculatorDefinition {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var nameHits, otherHits []*domain.CalculatorDefinition
	for _, def := range r.ordered {
		switch {
		case strings.Contains(strings.ToLower(def.Name), q):
			nameHits = append(nameHits, def)
		case strings.Contains(strings.ToLower(def.Description), q),
			strings.Contains(strings.ToLower(def.Category.String()), q):
			otherHits = append(otherHits, def)
		}
	}

	results := append(nameHits, otherHits...)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
