package javascript

import (
	"errors"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

var yamlLine = regexp.MustCompile(`line (\d+)`)

// decodeYAML reads a single YAML document into its root node. An empty
// document yields a zero node.
func decodeYAML(data []byte) (yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, yamlDiagnostic(err)
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return *doc.Content[0], nil
	}
	return doc, nil
}

// yamlDiagnostic recovers the line number yaml.v3 embeds in its messages.
func yamlDiagnostic(err error) error {
	msg := err.Error()
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = typeErr.Errors[0]
	}
	d := &lockfile.Diagnostic{Err: err}
	if m := yamlLine.FindStringSubmatch(msg); m != nil {
		d.Line, _ = strconv.Atoi(m[1])
	}
	return d
}

// mappingPairs returns the key/value node pairs of a mapping node.
func mappingPairs(n *yaml.Node) ([][2]*yaml.Node, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		fallthrough
	default:
		return nil, lockfile.At(n.Line, n.Column, "expected a mapping")
	}
	pairs := make([][2]*yaml.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, [2]*yaml.Node{n.Content[i], n.Content[i+1]})
	}
	return pairs, nil
}

// decodeNode decodes a value node, attaching its position on failure.
func decodeNode(n *yaml.Node, v any) error {
	if err := n.Decode(v); err != nil {
		return &lockfile.Diagnostic{Line: n.Line, Column: n.Column, Err: err}
	}
	return nil
}
