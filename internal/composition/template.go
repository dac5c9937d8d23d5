package composition

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	templateAPIVersionRe = regexp.MustCompile(`apiVersion:\s*([^\s{]+)`)
	templateKindRe       = regexp.MustCompile(`kind:\s*([^\s{]+)`)
)

// resourceMarkers pair the line that opens a resource with a key that has to
// follow within the next lines to confirm it.
var resourceMarkers = [...]struct{ start, confirm string }{
	{"apiVersion:", "kind:"},
	{"apiVersion:", "metadata:"},
}

// ExtractTemplateResources pulls kind/apiVersion pairs out of a Go template
// that renders Kubernetes manifests. The template is never executed; resource
// boundaries are found line by line and values containing template actions
// are ignored.
func ExtractTemplateResources(template string) []Resource {
	lines := strings.Split(template, "\n")

	var (
		docs    [][]string
		current []string
		inYAML  bool
	)
	flush := func() {
		if len(current) > 0 {
			docs = append(docs, current)
		}
		current = nil
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		if startsResource(lines, i) {
			if inYAML {
				flush()
			}
			current = nil
			inYAML = true
		}

		if inYAML {
			current = append(current, line)
		}

		if trimmed == "---" && inYAML {
			flush()
			inYAML = false
		}
	}
	flush()

	resources := make([]Resource, 0, len(docs))
	for _, doc := range docs {
		if r, ok := parseTemplatedResource(strings.Join(doc, " ")); ok {
			resources = append(resources, r)
		}
	}
	log.Debug().Msgf("extracted %d resources from template", len(resources))
	return resources
}

func startsResource(lines []string, i int) bool {
	end := min(i+3, len(lines))
	window := strings.Join(lines[i:end], "")
	for _, m := range resourceMarkers {
		if strings.Contains(lines[i], m.start) && strings.Contains(window, m.confirm) {
			return true
		}
	}
	return false
}

func parseTemplatedResource(content string) (Resource, bool) {
	api := templateAPIVersionRe.FindStringSubmatch(content)
	kind := templateKindRe.FindStringSubmatch(content)
	if api == nil || kind == nil {
		return Resource{}, false
	}
	return Resource{
		Kind:       strings.TrimSpace(kind[1]),
		APIVersion: strings.TrimSpace(api[1]),
	}, true
}
