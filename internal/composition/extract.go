package composition

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/noders-team/xptools/pkg/yamlutil"
)

// ExtractComposition returns one row per Crossplane or Upbound resource that
// the Composition in doc references, together with the names of the pipeline
// functions it calls. Documents that are not Compositions yield ErrNotComposition.
func ExtractComposition(doc *yaml.Node, filePath string) ([]Row, []string, error) {
	if err := yamlutil.CheckAliases(doc); err != nil {
		return nil, nil, err
	}
	if yamlutil.StringOr(yamlutil.Get(doc, "apiVersion"), "") != CompositionAPIVersion ||
		yamlutil.StringOr(yamlutil.Get(doc, "kind"), "") != CompositionKind {
		return nil, nil, ErrNotComposition
	}

	ref := yamlutil.Lookup(doc, "spec", "compositeTypeRef")
	compositeKey := fmt.Sprintf("%s_%s",
		yamlutil.StringOr(yamlutil.Get(ref, "kind"), NotAvailable),
		yamlutil.StringOr(yamlutil.Get(ref, "apiVersion"), NotAvailable),
	)

	steps := yamlutil.Items(yamlutil.Lookup(doc, "spec", "pipeline"))
	functions := make([]string, 0, len(steps))
	for _, step := range steps {
		functions = append(functions, yamlutil.StringOr(yamlutil.Lookup(step, "functionRef", "name"), NotAvailable))
	}

	var resources []Resource
	collectResources(doc, &resources)

	for _, step := range steps {
		tmpl, ok := yamlutil.ScalarString(yamlutil.Lookup(step, "input", "inline", "template"))
		if !ok || tmpl == "" {
			continue
		}
		for _, r := range ExtractTemplateResources(tmpl) {
			if IsCrossplaneOrUpbound(r.APIVersion) {
				r.Category = Category(r.APIVersion)
				resources = append(resources, r)
			}
		}
	}

	rows := make([]Row, 0, len(resources))
	for _, r := range resources {
		rows = append(rows, Row{
			FilePath:                filePath,
			CompositeKindAPIVersion: compositeKey,
			MRKindAPIVersion:        r.Key(),
			Kind:                    r.Kind,
			APIVersion:              r.APIVersion,
			Category:                r.Category,
		})
	}

	log.Debug().Msgf("found %d resources in %s, functions: %v", len(resources), filePath, functions)
	return rows, functions, nil
}

// collectResources walks node in document order and records every mapping
// whose apiVersion is served by a Crossplane or Upbound API group.
func collectResources(node *yaml.Node, out *[]Resource) {
	n := yamlutil.Content(node)
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.MappingNode:
		for _, p := range yamlutil.MappingPairs(n) {
			if p.Key == "apiVersion" {
				if api, ok := yamlutil.ScalarString(p.Value); ok && IsCrossplaneOrUpbound(api) {
					*out = append(*out, Resource{
						Kind:       yamlutil.StringOr(yamlutil.Get(n, "kind"), NotAvailable),
						APIVersion: api,
						Category:   Category(api),
					})
				}
			}
			collectResources(p.Value, out)
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			collectResources(item, out)
		}
	}
}

// ExtractFile processes every document in a manifest file. Rows from the
// documents decoded before a syntax error are kept and the error is reported
// in FileResult.Err.
func ExtractFile(path string) FileResult {
	res := FileResult{Path: path}

	f, err := os.Open(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to open '%s': %w", path, err)
		return res
	}
	defer f.Close()

	docs, decodeErr := yamlutil.DecodeAll(f)
	for _, doc := range docs {
		rows, functions, err := ExtractComposition(doc, path)
		if errors.Is(err, ErrNotComposition) {
			log.Debug().Msgf("document in %s is not a Composition, skipping", path)
			continue
		}
		if err != nil {
			res.Err = fmt.Errorf("failed to extract from '%s': %w", path, err)
			return res
		}
		res.Rows = append(res.Rows, rows...)
		res.Functions = append(res.Functions, functions...)
	}
	if decodeErr != nil {
		res.Err = fmt.Errorf("failed to parse '%s': %w", path, decodeErr)
	}
	return res
}
