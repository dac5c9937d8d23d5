package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noders-team/xptools/internal/composition"
)

func row(file, composite, kind, apiVersion, category string) composition.Row {
	return composition.Row{
		FilePath:                file,
		CompositeKindAPIVersion: composite,
		MRKindAPIVersion:        kind + "_" + apiVersion,
		Kind:                    kind,
		APIVersion:              apiVersion,
		Category:                category,
	}
}

var sampleRows = []composition.Row{
	row("a.yaml", "XNet_v1", "VPC", "ec2.aws.upbound.io/v1beta1", "aws"),
	row("a.yaml", "XNet_v1", "Subnet", "ec2.aws.upbound.io/v1beta1", "aws"),
	row("a.yaml", "XNet_v1", "Subnet", "ec2.aws.upbound.io/v1beta1", "aws"),
	row("b.yaml", "XNet_v2", "Subnet", "ec2.aws.upbound.io/v1beta1", "aws"),
	row("b.yaml", "XBucket_v1", "Bucket", "s3.aws.upbound.io/v1beta1", "aws"),
	row("c.yaml", "XBucket_v1", "VPC", "ec2.aws.upbound.io/v1beta1", "aws"),
}

func TestMRStatistics(t *testing.T) {
	stats := MRStatistics(sampleRows)

	expected := []MRStat{
		{
			KindAPIVersion: "Subnet_ec2.aws.upbound.io/v1beta1", Kind: "Subnet", APIVersion: "ec2.aws.upbound.io/v1beta1", Category: "aws",
			TotalOccurrences: 3, FoundInFiles: 2, UsedByCompositions: 2, Share: decimal.RequireFromString("50"),
		},
		{
			KindAPIVersion: "VPC_ec2.aws.upbound.io/v1beta1", Kind: "VPC", APIVersion: "ec2.aws.upbound.io/v1beta1", Category: "aws",
			TotalOccurrences: 2, FoundInFiles: 2, UsedByCompositions: 2, Share: decimal.RequireFromString("33.33"),
		},
		{
			KindAPIVersion: "Bucket_s3.aws.upbound.io/v1beta1", Kind: "Bucket", APIVersion: "s3.aws.upbound.io/v1beta1", Category: "aws",
			TotalOccurrences: 1, FoundInFiles: 1, UsedByCompositions: 1, Share: decimal.RequireFromString("16.67"),
		},
	}

	opt := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(expected, stats, opt); diff != "" {
		t.Fatalf("statistics mismatch (-want +got):\n%s", diff)
	}
}

func TestMRStatisticsTiesSortByKey(t *testing.T) {
	stats := MRStatistics([]composition.Row{
		row("a.yaml", "X_v1", "Zone", "dns.gcp.upbound.io/v1", "gcp"),
		row("a.yaml", "X_v1", "Address", "compute.gcp.upbound.io/v1", "gcp"),
	})
	require.Len(t, stats, 2)
	require.Equal(t, "Address", stats[0].Kind)
	require.Equal(t, "Zone", stats[1].Kind)
}

func TestFileMappings(t *testing.T) {
	mappings := FileMappings(sampleRows)
	require.Len(t, mappings, 3)

	require.Equal(t, "Bucket_s3.aws.upbound.io/v1beta1", mappings[0].KindAPIVersion)
	require.Equal(t, "Subnet_ec2.aws.upbound.io/v1beta1", mappings[1].KindAPIVersion)
	require.Equal(t, "VPC_ec2.aws.upbound.io/v1beta1", mappings[2].KindAPIVersion)

	subnet := mappings[1]
	require.Equal(t, 2, subnet.TotalFiles)
	require.Equal(t, 3, subnet.TotalOccurrences)
	require.Equal(t, []FileCount{{Path: "a.yaml", Count: 2}, {Path: "b.yaml", Count: 1}}, subnet.Files)
	require.Equal(t, "a.yaml (2 occurrences)\nb.yaml (1 occurrences)", subnet.FileLocations())

	vpc := mappings[2]
	require.Equal(t, "a.yaml (1 occurrences)\nc.yaml (1 occurrences)", vpc.FileLocations())
}

func TestSummarize(t *testing.T) {
	report := Summarize(&composition.Result{
		Files:     3,
		Rows:      sampleRows,
		Functions: []string{"function-b", "function-a", "function-b"},
		Failed:    []composition.FileError{{Path: "d.yaml", Err: "boom"}},
	})

	require.False(t, report.Empty())
	require.Equal(t, 3, report.Files)
	require.Equal(t, []string{"function-a", "function-b"}, report.Functions)
	require.Len(t, report.Statistics, 3)
	require.Len(t, report.Mapping, 3)
	require.Len(t, report.Failed, 1)
}

func TestSummarizeEmpty(t *testing.T) {
	report := Summarize(&composition.Result{})
	require.True(t, report.Empty())
	require.Nil(t, report.Statistics)
	require.Nil(t, report.Mapping)

	require.True(t, Summarize(nil).Empty())
}
