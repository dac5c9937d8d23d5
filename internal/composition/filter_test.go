package composition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsCrossplaneOrUpbound(t *testing.T) {
	tests := []struct {
		apiVersion string
		expected   bool
	}{
		{"apiextensions.crossplane.io/v1", true},
		{"ec2.aws.upbound.io/v1beta1", true},
		{"pt.fn.crossplane.io/v1beta1", true},
		{"v1", false},
		{"apps/v1", false},
		{"crossplane.io/v1", false},
		{"example.crossplane.io", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.apiVersion, func(t *testing.T) {
			require.Equal(t, tt.expected, IsCrossplaneOrUpbound(tt.apiVersion))
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		apiVersion string
		expected   string
	}{
		{"aws.upbound.io/v1beta1", "aws"},
		{"s3.aws.upbound.io/v1beta1", "aws"},
		{"fn.crossplane.io/v1beta1", "fn"},
		{"pt.fn.crossplane.io/v1beta1", "fn"},
		{"apiextensions.crossplane.io/v1", "apiextensions"},
		{"kubernetes.crossplane.io/v1alpha2", "kubernetes"},
		{"helm.crossplane.io/v1beta1", "helm"},
		{"apps/v1", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.apiVersion, func(t *testing.T) {
			require.Equal(t, tt.expected, Category(tt.apiVersion))
		})
	}
}
