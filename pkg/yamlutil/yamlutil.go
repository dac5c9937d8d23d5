package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// IsYAMLFile reports whether name carries a .yaml or .yml suffix.
func IsYAMLFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// FindFiles walks root and returns every YAML file below it in lexical order.
// Symlinks count when they point at a regular file.
func FindFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !IsYAMLFile(path) {
			return nil
		}
		switch {
		case d.Type().IsRegular():
			files = append(files, path)
		case d.Type()&fs.ModeSymlink != 0:
			// Dangling links and links to directories are skipped.
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				files = append(files, path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk '%s': %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// DecodeAll decodes every document of a multi-document stream. Empty and null
// documents are skipped. On a syntax error, or a document rejected by
// CheckAliases, the documents decoded before it are returned alongside the error.
func DecodeAll(r io.Reader) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(r)
	var docs []*yaml.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return docs, fmt.Errorf("failed to decode document %d: %w", len(docs)+1, err)
		}
		if err := CheckAliases(&doc); err != nil {
			return docs, fmt.Errorf("document %d: %w", len(docs)+1, err)
		}
		if IsEmpty(&doc) {
			continue
		}
		docs = append(docs, &doc)
	}
}

// Content unwraps document nodes and resolves aliases.
func Content(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) > 0:
			node = node.Content[0]
		case node.Kind == yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

// IsEmpty reports whether node holds no value: nil, null, an empty document
// or an empty mapping/sequence.
func IsEmpty(node *yaml.Node) bool {
	n := Content(node)
	if n == nil {
		return true
	}
	switch n.Kind {
	case yaml.DocumentNode:
		return true
	case yaml.ScalarNode:
		return n.Tag == "!!null" || n.Value == ""
	case yaml.MappingNode, yaml.SequenceNode:
		return len(n.Content) == 0
	}
	return false
}

// Pair is a single mapping entry.
type Pair struct {
	Key   string
	Value *yaml.Node
}

// MappingPairs returns the entries of a mapping in document order. Merge keys
// (<<) are expanded with explicit keys overriding merged ones, and a repeated
// key keeps its first position but its last value. Non-mappings yield nil.
func MappingPairs(node *yaml.Node) []Pair {
	n := Content(node)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	var (
		pairs  = make([]Pair, 0, len(n.Content)/2)
		index  = make(map[string]int, len(n.Content)/2)
		merges []*yaml.Node
	)
	set := func(p Pair) {
		if i, ok := index[p.Key]; ok {
			pairs[i].Value = p.Value
			return
		}
		index[p.Key] = len(pairs)
		pairs = append(pairs, p)
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		if isMergeKey(n.Content[i]) {
			merges = append(merges, n.Content[i+1])
		}
	}
	for _, m := range merges {
		for _, p := range mergedPairs(m) {
			set(p)
		}
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if !isMergeKey(n.Content[i]) {
			set(Pair{Key: n.Content[i].Value, Value: n.Content[i+1]})
		}
	}
	return pairs
}

func isMergeKey(key *yaml.Node) bool {
	return key.Kind == yaml.ScalarNode && key.Tag == "!!merge" && key.Value == "<<"
}

// mergedPairs flattens a merge value: a mapping, or a sequence of mappings in
// which earlier entries take precedence.
func mergedPairs(value *yaml.Node) []Pair {
	v := Content(value)
	if v == nil {
		return nil
	}
	if v.Kind != yaml.SequenceNode {
		return MappingPairs(v)
	}
	var pairs []Pair
	for i := len(v.Content) - 1; i >= 0; i-- {
		pairs = append(pairs, MappingPairs(v.Content[i])...)
	}
	return pairs
}

// Get returns the value stored under key in a mapping node, or nil.
func Get(node *yaml.Node, key string) *yaml.Node {
	for _, p := range MappingPairs(node) {
		if p.Key == key {
			return Content(p.Value)
		}
	}
	return nil
}

// Lookup follows keys through nested mappings.
func Lookup(node *yaml.Node, keys ...string) *yaml.Node {
	cur := Content(node)
	for _, key := range keys {
		cur = Get(cur, key)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Items returns the elements of a sequence node. Non-sequences yield nil.
func Items(node *yaml.Node) []*yaml.Node {
	n := Content(node)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]*yaml.Node, 0, len(n.Content))
	for _, item := range n.Content {
		items = append(items, Content(item))
	}
	return items
}

// ScalarString returns the value of a string scalar.
func ScalarString(node *yaml.Node) (string, bool) {
	n := Content(node)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
		return "", false
	}
	return n.Value, true
}

// StringOr returns the scalar text of node, or fallback when node is missing,
// null or not a scalar.
func StringOr(node *yaml.Node, fallback string) string {
	n := Content(node)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return fallback
	}
	return n.Value
}
