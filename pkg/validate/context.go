package validate

import (
	"fmt"

	"github.com/framecheck/framecheck/pkg/dataset"
)

// callContext is the per-call snapshot of the dataset layout. Taking it
// once up front keeps every phase working against the same view, whatever
// the backing implementation does.
type callContext struct {
	columns   []string
	columnSet map[string]struct{}
	rows      int
}

func newCallContext(ds dataset.Dataset) callContext {
	columns := ds.Columns()
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return callContext{columns: columns, columnSet: set, rows: ds.NumRows()}
}

// resolution maps every rule onto the concrete columns it covers for this
// call.
type resolution struct {
	// matches holds the matched columns per rule, aligned with the rule
	// list, each in dataset column order.
	matches [][]string

	// matched is the union of all matches.
	matched map[string]struct{}
}

func (v *Validator) resolve(ctx callContext) resolution {
	res := resolution{
		matches: make([][]string, len(v.rules)),
		matched: make(map[string]struct{}),
	}
	for i, cr := range v.rules {
		var matched []string
		if cr.re != nil {
			for _, col := range ctx.columns {
				if cr.re.MatchString(col) {
					matched = append(matched, col)
				}
			}
		} else if _, ok := ctx.columnSet[cr.Selector]; ok {
			matched = []string{cr.Selector}
		}
		res.matches[i] = matched
		for _, m := range matched {
			res.matched[m] = struct{}{}
		}
	}
	return res
}

// subjectString renders the context suffix reports embed in messages, in
// the shape " in function 'f' parameter 'p'".
func subjectString(function, param string, returnValue bool) string {
	switch {
	case function != "" && returnValue:
		return fmt.Sprintf(" in function '%s' return value", function)
	case function != "" && param != "":
		return fmt.Sprintf(" in function '%s' parameter '%s'", function, param)
	case function != "":
		return fmt.Sprintf(" in function '%s'", function)
	case returnValue:
		return " in return value"
	case param != "":
		return fmt.Sprintf(" in parameter '%s'", param)
	default:
		return ""
	}
}
