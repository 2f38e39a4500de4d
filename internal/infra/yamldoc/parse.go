package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/o11c/targets/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	tagNull  = "!!null"
	tagMerge = "!!merge"
)

// Parse decodes a YAML document into an ordered Document. The root must be a mapping
// (an empty or null document is an empty mapping), keys must be unique scalars and
// values must be scalars, null, or sequences of scalars. A stream holding more than
// one document is rejected.
func Parse(name string, b []byte) (domain.Document, error) {
	doc := domain.Document{Name: name}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return domain.Document{}, parseError(name, "", "%v", err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return domain.Document{}, parseError(name, "", "expected a single document: %v", err)
		}
		return domain.Document{}, parseError(name, "", "expected a single document, found another at line %d", extra.Line)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return doc, nil
		}
		node = node.Content[0]
	}
	node = deref(node)

	switch {
	case node.Kind == 0:
		return doc, nil
	case node.Kind == yaml.ScalarNode && node.Tag == tagNull:
		return doc, nil
	case node.Kind != yaml.MappingNode:
		return domain.Document{}, parseError(name, "", "expected a mapping at line %d, found %s", node.Line, kindName(node))
	}

	pairs, err := flatten(name, node)
	if err != nil {
		return domain.Document{}, err
	}

	seen := make(map[string]int, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		keyNode, valNode := deref(pairs[i]), pairs[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return domain.Document{}, parseError(name, "", "found unhashable %s key at line %d", kindName(keyNode), keyNode.Line)
		}
		key := keyNode.Value
		if line, dup := seen[key]; dup {
			return domain.Document{}, parseError(name, key, "found duplicate key at line %d (first defined at line %d)", keyNode.Line, line)
		}
		seen[key] = keyNode.Line

		v, err := toValue(name, key, valNode)
		if err != nil {
			return domain.Document{}, err
		}
		doc.Fields = append(doc.Fields, domain.Field{Key: key, Value: v})
	}

	return doc, nil
}

// flatten expands YAML merge keys (<<) into the key/value pair list. Merged pairs come
// first; a key present both in a merged mapping and explicitly counts as a duplicate.
func flatten(name string, m *yaml.Node) ([]*yaml.Node, error) {
	var merged, explicit []*yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode || k.Tag != tagMerge {
			explicit = append(explicit, k, v)
			continue
		}

		v = deref(v)
		var sources []*yaml.Node
		switch v.Kind {
		case yaml.MappingNode:
			sources = []*yaml.Node{v}
		case yaml.SequenceNode:
			for _, s := range v.Content {
				sources = append(sources, deref(s))
			}
		default:
			return nil, parseError(name, "", "merge key at line %d expects a mapping, found %s", k.Line, kindName(v))
		}

		for _, s := range sources {
			if s.Kind != yaml.MappingNode {
				return nil, parseError(name, "", "merge key at line %d expects a mapping, found %s", k.Line, kindName(s))
			}
			sub, err := flatten(name, s)
			if err != nil {
				return nil, err
			}
			merged = append(merged, sub...)
		}
	}
	return append(merged, explicit...), nil
}

func toValue(name, key string, n *yaml.Node) (domain.Value, error) {
	n = deref(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == tagNull {
			return domain.Absent(), nil
		}
		return domain.StringValue(n.Value), nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			c = deref(c)
			if c.Kind != yaml.ScalarNode || c.Tag == tagNull {
				return domain.Value{}, parseError(name, key, "list item at line %d must be a scalar, found %s", c.Line, kindName(c))
			}
			items = append(items, c.Value)
		}
		return domain.ListValue(items), nil
	default:
		return domain.Value{}, parseError(name, key, "unsupported %s value at line %d", kindName(n), n.Line)
	}
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		if n.Tag == tagNull {
			return "null"
		}
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty node"
	}
}

func parseError(name, field, format string, args ...any) error {
	return domain.NewOpError("yamldoc.parse", domain.KindParse, name, field, "%s", fmt.Sprintf(format, args...))
}
