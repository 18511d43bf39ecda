package rules

import (
	"fmt"
	"sort"

	"github.com/framecheck/framecheck/pkg/dataset"
	"github.com/framecheck/framecheck/pkg/pattern"
)

var validDTypes = map[dataset.DType]struct{}{
	dataset.Bool:      {},
	dataset.Int8:      {},
	dataset.Int16:     {},
	dataset.Int32:     {},
	dataset.Int64:     {},
	dataset.Uint8:     {},
	dataset.Uint16:    {},
	dataset.Uint32:    {},
	dataset.Uint64:    {},
	dataset.Float32:   {},
	dataset.Float64:   {},
	dataset.String:    {},
	dataset.Binary:    {},
	dataset.Date32:    {},
	dataset.Date64:    {},
	dataset.Timestamp: {},
}

// Normalize flattens the specification into the ordered rule list the
// engine executes and validates everything that can be validated without
// data: dtype names, check operators and arguments, composite groups.
func (s *Set) Normalize() ([]Rule, error) {
	var out []Rule
	if s.Columns != nil {
		rules, err := s.Columns.normalize()
		if err != nil {
			return nil, err
		}
		out = rules
	}
	if err := validateCompositeGroups(s.CompositeUnique); err != nil {
		return nil, err
	}
	return out, nil
}

func (n Names) normalize() ([]Rule, error) {
	out := make([]Rule, 0, len(n))
	for _, selector := range n {
		rule, err := buildRule(selector, Def{}, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, nil
}

func (d DTypes) normalize() ([]Rule, error) {
	out := make([]Rule, 0, len(d))
	for _, selector := range sortedKeys(d) {
		dtype := d[selector]
		if dtype == "" {
			return nil, specErrorf("selector %q has an empty dtype", selector)
		}
		rule, err := buildRule(selector, Def{DType: dtype}, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, nil
}

func (d Defs) normalize() ([]Rule, error) {
	out := make([]Rule, 0, len(d))
	for _, selector := range sortedKeys(d) {
		rule, err := buildRule(selector, d[selector], nil)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, nil
}

// ordered is the document-order shape produced by the YAML parser. Each
// entry carries its checks in document order as well.
type ordered []orderedDef

type orderedDef struct {
	selector   string
	def        Def
	checkOrder []string
}

func (o ordered) normalize() ([]Rule, error) {
	out := make([]Rule, 0, len(o))
	for _, entry := range o {
		rule, err := buildRule(entry.selector, entry.def, entry.checkOrder)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, nil
}

// buildRule resolves defaults and validates one selector's specification.
// checkOrder fixes the evaluation order of the checks map; nil falls back
// to lexicographic order.
func buildRule(selector string, def Def, checkOrder []string) (Rule, error) {
	if selector == "" {
		return Rule{}, specErrorf("empty column selector")
	}
	if def.DType != "" {
		if _, ok := validDTypes[dataset.DType(def.DType)]; !ok {
			return Rule{}, specErrorf("selector %q has unknown dtype %q", selector, def.DType)
		}
	}

	rule := Rule{
		Selector: selector,
		DType:    def.DType,
		Nullable: def.Nullable == nil || *def.Nullable,
		Unique:   def.Unique,
		Required: def.Required == nil || *def.Required,
	}

	if len(def.Checks) == 0 {
		return rule, nil
	}
	if checkOrder == nil {
		checkOrder = sortedKeys(def.Checks)
	}
	rule.Checks = make([]Check, 0, len(checkOrder))
	for _, name := range checkOrder {
		chk, err := buildCheck(name, def.Checks[name])
		if err != nil {
			return Rule{}, fmt.Errorf("selector %q: %w", selector, err)
		}
		rule.Checks = append(rule.Checks, chk)
	}
	return rule, nil
}

func validateCompositeGroups(groups [][]string) error {
	for _, group := range groups {
		if len(group) < 2 {
			return specErrorf("composite uniqueness group %v needs at least two columns", group)
		}
		seen := make(map[string]struct{}, len(group))
		for _, name := range group {
			if name == "" {
				return specErrorf("composite uniqueness group %v contains an empty column name", group)
			}
			if pattern.IsPattern(name) {
				return specErrorf("composite uniqueness group %v must use literal column names, got pattern %q", group, name)
			}
			if _, dup := seen[name]; dup {
				return specErrorf("composite uniqueness group %v repeats column %q", group, name)
			}
			seen[name] = struct{}{}
		}
	}
	return nil
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
