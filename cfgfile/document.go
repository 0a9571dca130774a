package cfgfile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Decoded documents are trees whose leaves are nil, bool, int, int64,
// uint64, float64, or string values, and whose inner nodes are []any
// (sequences) or object (mappings).

// An object is a mapping whose members are kept in document order.
type object []member

type member struct {
	key   string
	value any
}

// lookup returns the value of the last member named key.
func (o object) lookup(key string) (any, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].key == key {
			return o[i].value, true
		}
	}
	return nil, false
}

func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0: // empty document
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.MappingNode:
		obj := make(object, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj = append(obj, member{key: n.Content[i].Value, value: v})
		}
		return obj, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unexpected YAML node", n.Line)
	}
}

const keySep = "\x00"

// keyOrder maps the path of every table in md to the names of the table's
// keys, in document order.
func keyOrder(md toml.MetaData) map[string][]string {
	order := make(map[string][]string)
	for _, key := range md.Keys() {
		if len(key) == 0 {
			continue
		}
		parent := strings.Join(key[:len(key)-1], keySep)
		name := key[len(key)-1]
		if !slices.Contains(order[parent], name) {
			order[parent] = append(order[parent], name)
		}
	}
	return order
}

func fromTOML(v any, path string, order map[string][]string) any {
	switch v := v.(type) {
	case map[string]any:
		obj := make(object, 0, len(v))
		for _, k := range orderedKeys(v, order[path]) {
			obj = append(obj, member{key: k, value: fromTOML(v[k], joinKey(path, k), order)})
		}
		return obj
	case []map[string]any:
		list := make([]any, len(v))
		for i, e := range v {
			list[i] = fromTOML(e, path, order)
		}
		return list
	case []any:
		list := make([]any, len(v))
		for i, e := range v {
			list[i] = fromTOML(e, path, order)
		}
		return list
	default:
		return v
	}
}

// orderedKeys returns the keys of m: first those listed in known (in that
// order), then the others, sorted.
func orderedKeys(m map[string]any, known []string) []string {
	keys := make([]string, 0, len(m))
	for _, k := range known {
		if _, found := m[k]; found {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range m {
		if !slices.Contains(keys, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + keySep + key
}
