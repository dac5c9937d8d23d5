package report

import (
	"github.com/noders-team/xptools/internal/analysis"
)

const (
	SheetRawData      = "Raw Data"
	SheetMRStatistics = "MR Statistics"
	SheetFileMapping  = "File Mapping"
	SheetFunctions    = "Functions"
)

// table is a titled grid shared by the spreadsheet and markdown exporters.
type table struct {
	Name   string
	Header []string
	Rows   [][]any
}

func tables(r *analysis.Report) []table {
	raw := table{
		Name: SheetRawData,
		Header: []string{
			"File Path",
			"Composition Kind/API Version",
			"ManagedResource (MR) Kind/API Version",
			"Kind",
			"API Version",
			"Category",
		},
	}
	for _, row := range r.Rows {
		raw.Rows = append(raw.Rows, []any{
			row.FilePath, row.CompositeKindAPIVersion, row.MRKindAPIVersion, row.Kind, row.APIVersion, row.Category,
		})
	}

	stats := table{
		Name: SheetMRStatistics,
		Header: []string{
			"Kind/API Version",
			"Kind",
			"API Version",
			"Category",
			"Total Occurrences",
			"Found in N Files",
			"Used by N Compositions",
			"Share (%)",
		},
	}
	for _, s := range r.Statistics {
		stats.Rows = append(stats.Rows, []any{
			s.KindAPIVersion, s.Kind, s.APIVersion, s.Category,
			s.TotalOccurrences, s.FoundInFiles, s.UsedByCompositions, s.Share.InexactFloat64(),
		})
	}

	mapping := table{
		Name:   SheetFileMapping,
		Header: []string{"Kind/API Version", "Total Files", "Total Occurrences", "File Locations"},
	}
	for _, m := range r.Mapping {
		mapping.Rows = append(mapping.Rows, []any{m.KindAPIVersion, m.TotalFiles, m.TotalOccurrences, m.FileLocations()})
	}

	functions := table{Name: SheetFunctions, Header: []string{"Function Reference"}}
	for _, fn := range r.Functions {
		functions.Rows = append(functions.Rows, []any{fn})
	}

	return []table{raw, stats, mapping, functions}
}
