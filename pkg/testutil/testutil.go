package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// NetworkComposition is a pipeline Composition mixing patch-and-transform
// resources with a go-templating step.
const NetworkComposition = `apiVersion: apiextensions.crossplane.io/v1
kind: Composition
metadata:
  name: xnetworks.aws.platform.example.org
spec:
  compositeTypeRef:
    apiVersion: platform.example.org/v1alpha1
    kind: XNetwork
  mode: Pipeline
  pipeline:
    - step: patch-and-transform
      functionRef:
        name: function-patch-and-transform
      input:
        apiVersion: pt.fn.crossplane.io/v1beta1
        kind: Resources
        resources:
          - name: vpc
            base:
              apiVersion: ec2.aws.upbound.io/v1beta1
              kind: VPC
              spec:
                forProvider:
                  region: eu-central-1
          - name: gateway
            base:
              apiVersion: ec2.aws.upbound.io/v1beta1
              kind: InternetGateway
    - step: render-subnets
      functionRef:
        name: function-go-templating
      input:
        apiVersion: gotemplating.fn.crossplane.io/v1beta1
        kind: GoTemplate
        source: Inline
        inline:
          template: |
            {{ range $i, $az := .observed.composite.resource.spec.zones }}
            ---
            apiVersion: ec2.aws.upbound.io/v1beta1
            kind: Subnet
            metadata:
              annotations:
                gotemplating.fn.crossplane.io/composition-resource-name: subnet-{{ $i }}
            {{ end }}
    - step: ready
      functionRef:
        name: function-auto-ready
`

// BucketComposition is a minimal Composition with one managed resource.
const BucketComposition = `apiVersion: apiextensions.crossplane.io/v1
kind: Composition
metadata:
  name: xbuckets
spec:
  compositeTypeRef:
    apiVersion: storage.example.org/v1alpha1
    kind: XBucket
  pipeline:
    - step: patch-and-transform
      functionRef:
        name: function-patch-and-transform
      input:
        apiVersion: pt.fn.crossplane.io/v1beta1
        kind: Resources
        resources:
          - name: bucket
            base:
              apiVersion: s3.aws.upbound.io/v1beta1
              kind: Bucket
`

// ConfigMap is a document every extractor must ignore.
const ConfigMap = `apiVersion: v1
kind: ConfigMap
metadata:
  name: settings
data:
  region: eu-central-1
`

// CyclicComposition anchors a sequence that contains an alias to itself.
const CyclicComposition = `apiVersion: apiextensions.crossplane.io/v1
kind: Composition
spec:
  loop: &x
    - *x
`

// NestedAliases returns a Composition whose aliases double at every level, so
// its expanded size grows as 2^levels while the text stays small.
func NestedAliases(levels int) string {
	var b strings.Builder
	b.WriteString("apiVersion: apiextensions.crossplane.io/v1\nkind: Composition\nspec:\n")
	b.WriteString("  a0: &a0 {apiVersion: s3.aws.upbound.io/v1, kind: Bucket}\n")
	for i := 1; i <= levels; i++ {
		fmt.Fprintf(&b, "  a%d: &a%d [*a%d, *a%d]\n", i, i, i-1, i-1)
	}
	return b.String()
}

// WriteFiles materialises files (relative path -> content) below root.
func WriteFiles(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// Tree writes files into a fresh temporary directory and returns its path.
func Tree(t testing.TB, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	WriteFiles(t, root, files)
	return root
}
