// Package render formats result pages and records for the terminal.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/billmal071/finna/internal/finna"
	"github.com/mattn/go-runewidth"
)

// TitleWidth is the display width of the title column
const TitleWidth = 50

// AuthorSeparator joins author names on one line
const AuthorSeparator = " | "

// Title truncates s to width display columns and pads it to exactly width.
// Wide runes count as two columns.
func Title(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// Authors joins the display authors of rec
func Authors(rec *finna.Record) string {
	return strings.Join(rec.DisplayAuthors(), AuthorSeparator)
}

// Page prints one result page followed by a summary footer
func Page(w io.Writer, params finna.SearchParameters, page *finna.ResultPage) {
	if page == nil {
		page = &finna.ResultPage{}
	}

	width := len(fmt.Sprint(len(page.Records)))
	for i, rec := range page.Records {
		if rec == nil {
			continue
		}
		pageEntry(w, i+1, width, rec)
	}

	if len(page.Records) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No results."))
	}
	fmt.Fprintln(w, Footer(params, page))
}

func pageEntry(w io.Writer, index, width int, rec *finna.Record) {
	title := rec.Title
	if title == "" {
		title = rec.ID
	}

	line := fmt.Sprintf("%*d. %s", width, index, TitleStyle.Render(Title(title, TitleWidth)))
	if rec.Year != "" {
		line += " " + DimStyle.Render("("+rec.Year+")")
	}
	label, code := rec.CanonicalFormat()
	line += " " + FormatStyle.Render(fmt.Sprintf("%s [%s]", label, code))
	fmt.Fprintln(w, line)

	indent := strings.Repeat(" ", width+2)
	if authors := Authors(rec); authors != "" {
		fmt.Fprintln(w, indent+authors)
	}
	if building := rec.CanonicalBuilding(); building != "" {
		fmt.Fprintln(w, indent+DimStyle.Render(building))
	}
}

// Footer summarizes the result count, page number and active filters
func Footer(params finna.SearchParameters, page *finna.ResultPage) string {
	total := 0
	if page != nil {
		total = page.ResultCount
	}
	footer := fmt.Sprintf("%d results (page %d)", total, params.Page)
	if len(params.Filters) > 0 {
		footer += " filters: " + strings.Join(params.Filters, ", ")
	}
	return DimStyle.Render(footer)
}

// Record prints the summary view of a single record
func Record(w io.Writer, rec *finna.Record) {
	if rec == nil {
		return
	}

	title := rec.Title
	if title == "" {
		title = "(untitled)"
	}
	if rec.Year != "" {
		title += " (" + rec.Year + ")"
	}
	fmt.Fprintln(w, TitleStyle.Render(title))

	label, code := rec.CanonicalFormat()
	field(w, "ID", rec.ID)
	field(w, "Format", fmt.Sprintf("%s [%s]", label, code))
	field(w, "Authors", Authors(rec))
	for _, a := range rec.SecondaryAuthors {
		if a.Role != "" && a.Name != "" {
			field(w, "Contributor", a.Name+" ("+a.Role+")")
		}
	}
	field(w, "Building", rec.CanonicalBuilding())
	if len(rec.Images) > 0 {
		field(w, "Images", fmt.Sprint(len(rec.Images)))
	}

	if rec.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, rec.Description)
	}
	if len(rec.Summary) > 0 {
		fmt.Fprintln(w)
		for _, s := range rec.Summary {
			fmt.Fprintln(w, s)
		}
	}
}

func field(w io.Writer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%s %s\n", DimStyle.Render(fmt.Sprintf("%-12s", name+":")), value)
}

// Raw prints data as indented JSON. Data that is not valid JSON is
// printed as is.
func Raw(w io.Writer, data []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintln(w, buf.String())
}

// Markup prints a normalized full record
func Markup(w io.Writer, s string) {
	fmt.Fprintln(w, strings.TrimRight(s, "\n"))
}

// Error prints err as a single line
func Error(w io.Writer, err error) {
	if err == nil {
		return
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	fmt.Fprintln(w, ErrorStyle.Render("Error: "+msg))
}

// Info prints a dimmed status line
func Info(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf(format, args...)))
}
