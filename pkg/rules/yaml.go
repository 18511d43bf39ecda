package rules

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSet mirrors the YAML document layout. Columns stays a raw node so
// that mapping order survives decoding.
type fileSet struct {
	Columns         yaml.Node  `yaml:"columns"`
	CompositeUnique [][]string `yaml:"composite_unique"`
	Strict          *bool      `yaml:"strict"`
	Lazy            *bool      `yaml:"lazy"`
}

type fileDef struct {
	DType    string    `yaml:"dtype"`
	Nullable *bool     `yaml:"nullable"`
	Unique   bool      `yaml:"unique"`
	Required *bool     `yaml:"required"`
	Checks   yaml.Node `yaml:"checks"`
}

// ParseYAML decodes a validation specification from a YAML document. Column
// and check declarations keep their document order. The columns section
// accepts all three shapes: a sequence of selectors, a mapping of selector
// to dtype string, or a mapping of selector to a full specification; dtype
// strings and full specifications may be mixed in one mapping.
func ParseYAML(data []byte) (*Set, error) {
	var f fileSet
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(ErrInvalidSpec, err)
	}

	set := &Set{
		CompositeUnique: f.CompositeUnique,
		Strict:          f.Strict,
		Lazy:            f.Lazy,
	}
	if !f.Columns.IsZero() {
		cols, err := parseColumnsNode(&f.Columns)
		if err != nil {
			return nil, err
		}
		set.Columns = cols
	}
	return set, nil
}

// LoadFile reads and parses a YAML rules file.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	set, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return set, nil
}

func parseColumnsNode(node *yaml.Node) (Columns, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var names Names
		if err := node.Decode(&names); err != nil {
			return nil, errors.Join(ErrInvalidSpec, err)
		}
		return names, nil

	case yaml.MappingNode:
		out := make(ordered, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			var selector string
			if err := keyNode.Decode(&selector); err != nil {
				return nil, errors.Join(ErrInvalidSpec, fmt.Errorf("column selector at line %d: %w", keyNode.Line, err))
			}
			entry, err := parseColumnValue(selector, valNode)
			if err != nil {
				return nil, err
			}
			out = append(out, entry)
		}
		return out, nil

	default:
		return nil, specErrorf("columns section must be a sequence or mapping, got a %s node", nodeKind(node.Kind))
	}
}

func parseColumnValue(selector string, node *yaml.Node) (orderedDef, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		// Either a bare dtype string or an empty value for presence-only.
		if node.Tag == "!!null" {
			return orderedDef{selector: selector}, nil
		}
		var dtype string
		if err := node.Decode(&dtype); err != nil {
			return orderedDef{}, errors.Join(ErrInvalidSpec,
				fmt.Errorf("selector %q at line %d: %w", selector, node.Line, err))
		}
		return orderedDef{selector: selector, def: Def{DType: dtype}}, nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch key := node.Content[i].Value; key {
			case "dtype", "nullable", "unique", "required", "checks":
			default:
				return orderedDef{}, specErrorf("selector %q: unknown specification key %q at line %d",
					selector, key, node.Content[i].Line)
			}
		}
		var fd fileDef
		if err := node.Decode(&fd); err != nil {
			return orderedDef{}, errors.Join(ErrInvalidSpec,
				fmt.Errorf("selector %q at line %d: %w", selector, node.Line, err))
		}
		def := Def{
			DType:    fd.DType,
			Nullable: fd.Nullable,
			Unique:   fd.Unique,
			Required: fd.Required,
		}
		var order []string
		if !fd.Checks.IsZero() {
			if fd.Checks.Kind != yaml.MappingNode {
				return orderedDef{}, specErrorf("selector %q: checks must be a mapping", selector)
			}
			def.Checks = make(Checks, len(fd.Checks.Content)/2)
			for i := 0; i+1 < len(fd.Checks.Content); i += 2 {
				keyNode, valNode := fd.Checks.Content[i], fd.Checks.Content[i+1]
				var name string
				if err := keyNode.Decode(&name); err != nil {
					return orderedDef{}, errors.Join(ErrInvalidSpec,
						fmt.Errorf("selector %q check name at line %d: %w", selector, keyNode.Line, err))
				}
				var arg any
				if err := valNode.Decode(&arg); err != nil {
					return orderedDef{}, errors.Join(ErrInvalidSpec,
						fmt.Errorf("selector %q check %q at line %d: %w", selector, name, valNode.Line, err))
				}
				def.Checks[name] = arg
				order = append(order, name)
			}
		}
		return orderedDef{selector: selector, def: def, checkOrder: order}, nil

	default:
		return orderedDef{}, specErrorf("selector %q must map to a dtype string or a specification mapping", selector)
	}
}

func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
