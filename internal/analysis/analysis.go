package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/noders-team/xptools/internal/composition"
)

// MRStat summarises how often one managed resource type is used.
type MRStat struct {
	KindAPIVersion     string          `json:"kindApiVersion"`
	Kind               string          `json:"kind"`
	APIVersion         string          `json:"apiVersion"`
	Category           string          `json:"category"`
	TotalOccurrences   int             `json:"totalOccurrences"`
	FoundInFiles       int             `json:"foundInFiles"`
	UsedByCompositions int             `json:"usedByCompositions"`
	Share              decimal.Decimal `json:"share"` // percent of all rows, two decimals
}

type FileCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// FileMapping lists the files a managed resource type appears in.
type FileMapping struct {
	KindAPIVersion   string      `json:"kindApiVersion"`
	TotalFiles       int         `json:"totalFiles"`
	TotalOccurrences int         `json:"totalOccurrences"`
	Files            []FileCount `json:"files"`
}

// FileLocations renders one "path (N occurrences)" line per file.
func (m FileMapping) FileLocations() string {
	lines := make([]string, 0, len(m.Files))
	for _, f := range m.Files {
		lines = append(lines, fmt.Sprintf("%s (%d occurrences)", f.Path, f.Count))
	}
	return strings.Join(lines, "\n")
}

// Report is everything the exporters render.
type Report struct {
	Files      int                     `json:"files"`
	Rows       []composition.Row       `json:"rows"`
	Statistics []MRStat                `json:"statistics"`
	Mapping    []FileMapping           `json:"fileMapping"`
	Functions  []string                `json:"functions"`
	Failed     []composition.FileError `json:"failed,omitempty"`
}

func (r *Report) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

type statKey struct {
	kindAPIVersion, kind, apiVersion, category string
}

// MRStatistics groups rows by managed resource type. The result is ordered by
// occurrences, most frequent first, then by kind/apiVersion.
func MRStatistics(rows []composition.Row) []MRStat {
	if len(rows) == 0 {
		return nil
	}

	type acc struct {
		occurrences int
		files       map[string]struct{}
		composites  map[string]struct{}
	}
	groups := make(map[statKey]*acc)
	for _, row := range rows {
		k := statKey{row.MRKindAPIVersion, row.Kind, row.APIVersion, row.Category}
		a, ok := groups[k]
		if !ok {
			a = &acc{files: map[string]struct{}{}, composites: map[string]struct{}{}}
			groups[k] = a
		}
		a.occurrences++
		a.files[row.FilePath] = struct{}{}
		a.composites[row.CompositeKindAPIVersion] = struct{}{}
	}

	total := decimal.NewFromInt(int64(len(rows)))
	hundred := decimal.NewFromInt(100)
	stats := make([]MRStat, 0, len(groups))
	for k, a := range groups {
		stats = append(stats, MRStat{
			KindAPIVersion:     k.kindAPIVersion,
			Kind:               k.kind,
			APIVersion:         k.apiVersion,
			Category:           k.category,
			TotalOccurrences:   a.occurrences,
			FoundInFiles:       len(a.files),
			UsedByCompositions: len(a.composites),
			Share:              decimal.NewFromInt(int64(a.occurrences)).Mul(hundred).Div(total).Round(2),
		})
	}

	slices.SortFunc(stats, func(a, b MRStat) int {
		if c := cmp.Compare(b.TotalOccurrences, a.TotalOccurrences); c != 0 {
			return c
		}
		return cmp.Or(
			cmp.Compare(a.KindAPIVersion, b.KindAPIVersion),
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.APIVersion, b.APIVersion),
			cmp.Compare(a.Category, b.Category),
		)
	})

	log.Debug().Msgf("generated statistics for %d managed resources", len(stats))
	return stats
}

// FileMappings maps every managed resource type to the files it occurs in.
// Types are ordered by kind/apiVersion; files by count, then path.
func FileMappings(rows []composition.Row) []FileMapping {
	if len(rows) == 0 {
		return nil
	}

	counts := make(map[string]map[string]int)
	for _, row := range rows {
		files, ok := counts[row.MRKindAPIVersion]
		if !ok {
			files = make(map[string]int)
			counts[row.MRKindAPIVersion] = files
		}
		files[row.FilePath]++
	}

	mappings := make([]FileMapping, 0, len(counts))
	for key, files := range counts {
		m := FileMapping{KindAPIVersion: key, TotalFiles: len(files)}
		for path, n := range files {
			m.Files = append(m.Files, FileCount{Path: path, Count: n})
			m.TotalOccurrences += n
		}
		slices.SortFunc(m.Files, func(a, b FileCount) int {
			return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Path, b.Path))
		})
		mappings = append(mappings, m)
	}
	slices.SortFunc(mappings, func(a, b FileMapping) int {
		return cmp.Compare(a.KindAPIVersion, b.KindAPIVersion)
	})

	log.Debug().Msgf("created mapping for %d managed resources", len(mappings))
	return mappings
}

// Summarize turns a scan result into a report.
func Summarize(res *composition.Result) *Report {
	if res == nil {
		return &Report{}
	}
	functions := slices.Clone(res.Functions)
	slices.Sort(functions)
	functions = slices.Compact(functions)

	return &Report{
		Files:      res.Files,
		Rows:       res.Rows,
		Statistics: MRStatistics(res.Rows),
		Mapping:    FileMappings(res.Rows),
		Functions:  functions,
		Failed:     res.Failed,
	}
}
