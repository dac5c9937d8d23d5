package yamlutil

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MaxExpandedNodes bounds the size of a document once every alias is expanded.
const MaxExpandedNodes = 1_000_000

var (
	ErrCyclicAlias    = errors.New("alias refers to an enclosing anchor")
	ErrAliasExpansion = fmt.Errorf("aliases expand to more than %d nodes", MaxExpandedNodes)
)

// CheckAliases rejects node graphs that cannot be walked safely: aliases that
// point back into their own anchor, and alias chains whose expansion exceeds
// MaxExpandedNodes. Decoding into yaml.Node performs neither check.
func CheckAliases(node *yaml.Node) error {
	c := aliasChecker{
		sizes:  make(map[*yaml.Node]int),
		active: make(map[*yaml.Node]bool),
	}
	n, err := c.size(node)
	if err != nil {
		return err
	}
	if n > MaxExpandedNodes {
		return ErrAliasExpansion
	}
	return nil
}

type aliasChecker struct {
	sizes  map[*yaml.Node]int // expanded size, memoised per node
	active map[*yaml.Node]bool
}

func (c *aliasChecker) size(n *yaml.Node) (int, error) {
	if n == nil {
		return 0, nil
	}
	if s, ok := c.sizes[n]; ok {
		return s, nil
	}
	if c.active[n] {
		return 0, fmt.Errorf("%w (line %d)", ErrCyclicAlias, n.Line)
	}
	c.active[n] = true
	defer delete(c.active, n)

	children := n.Content
	if n.Kind == yaml.AliasNode {
		children = []*yaml.Node{n.Alias}
	}
	total := 1
	for _, child := range children {
		s, err := c.size(child)
		if err != nil {
			return 0, err
		}
		total = min(total+s, MaxExpandedNodes+1)
	}
	c.sizes[n] = total
	return total, nil
}
