package composition

import (
	"regexp"
	"strings"
)

const categoryOther = "other"

var (
	crossplaneGroupRe = regexp.MustCompile(`([^.]+)\.crossplane\.io`)
	upboundGroupRe    = regexp.MustCompile(`([^.]+)\.upbound\.io`)
)

// IsCrossplaneOrUpbound reports whether apiVersion belongs to a *.crossplane.io
// or *.upbound.io API group.
func IsCrossplaneOrUpbound(apiVersion string) bool {
	return strings.Contains(apiVersion, ".crossplane.io/") || strings.Contains(apiVersion, ".upbound.io/")
}

// Category returns the label right before .crossplane.io or .upbound.io,
// e.g. "aws" for aws.upbound.io/v1beta1, and "other" when neither is present.
func Category(apiVersion string) string {
	if apiVersion == "" {
		return categoryOther
	}
	if m := crossplaneGroupRe.FindStringSubmatch(apiVersion); m != nil {
		return m[1]
	}
	if m := upboundGroupRe.FindStringSubmatch(apiVersion); m != nil {
		return m[1]
	}
	return categoryOther
}
