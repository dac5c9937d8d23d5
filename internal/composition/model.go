package composition

import "errors"

const (
	CompositionAPIVersion = "apiextensions.crossplane.io/v1"
	CompositionKind       = "Composition"

	// NotAvailable fills fields that a manifest leaves unset.
	NotAvailable = "N/A"
)

var ErrNotComposition = errors.New("document is not a Composition")

// Row is one managed resource reference found in a Composition.
type Row struct {
	FilePath                string `json:"filePath"`
	CompositeKindAPIVersion string `json:"compositeKindApiVersion"`
	MRKindAPIVersion        string `json:"mrKindApiVersion"`
	Kind                    string `json:"kind"`
	APIVersion              string `json:"apiVersion"`
	Category                string `json:"category"`
}

// Resource is a kind/apiVersion pair discovered inside a manifest or template.
type Resource struct {
	Kind       string
	APIVersion string
	Category   string
}

// Key identifies the resource type as "<kind>_<apiVersion>".
func (r Resource) Key() string {
	return r.Kind + "_" + r.APIVersion
}

// FileResult is the outcome of extracting a single manifest file.
type FileResult struct {
	Path      string
	Rows      []Row
	Functions []string
	Err       error
}

// FileError records a manifest that could not be processed completely.
type FileError struct {
	Path string `json:"path"`
	Err  string `json:"error"`
}

// Result aggregates the extraction over a directory tree.
type Result struct {
	Files     int
	Rows      []Row
	Functions []string
	Failed    []FileError
}
