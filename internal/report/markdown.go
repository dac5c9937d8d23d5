package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/noders-team/xptools/internal/analysis"
)

type tmplData struct {
	Report *analysis.Report
	Tables []table
}

//go:embed report.md.tpl
var tmplSource string

var markdownTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join":  strings.Join,
	"cells": markdownCells,
}).Parse(tmplSource))

// EncodeMarkdown renders the report as GitHub-flavoured markdown.
func EncodeMarkdown(w io.Writer, r *analysis.Report) error {
	buffer := new(bytes.Buffer)
	if err := markdownTmpl.Execute(buffer, &tmplData{Report: r, Tables: tables(r)}); err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err := buffer.WriteTo(w)
	return err
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", "<br>")

func markdownCells(row []any) string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = cellEscaper.Replace(fmt.Sprint(v))
	}
	return strings.Join(cells, " | ")
}
