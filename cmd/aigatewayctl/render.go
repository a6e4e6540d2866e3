package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/kbukum/aigateway/expense"
	"github.com/kbukum/aigateway/ocr"
	"github.com/kbukum/aigateway/transcription"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderExpenses(w io.Writer, r expense.Result) {
	fmt.Fprintln(w, expense.Format(r))
	fmt.Fprintf(w, "%d expenses, total %s (numeric prices sum to %s)\n",
		len(r.Expenses), money(r.Total), money(r.NumericSum()))
}

func renderOCR(w io.Writer, results []ocr.FileResult) {
	for _, f := range results {
		fmt.Fprintf(w, "== %s [%s]\n", f.Filename, f.Status)
		for _, p := range f.Result {
			fmt.Fprintf(w, "-- page %d, %d boxes\n", p.Page, len(p.Data))
			if text := strings.TrimSpace(p.FullText); text != "" {
				fmt.Fprintln(w, text)
			}
		}
	}
}

func renderTranscripts(w io.Writer, results []transcription.FileResult) {
	for _, f := range results {
		fmt.Fprintf(w, "== %s [%s] %.1fs\n", f.Filename, f.Status, f.Duration)
		for _, u := range f.Result {
			fmt.Fprintf(w, "[%6.2f-%6.2f] %s: %s\n", u.StartTime, u.EndTime, u.Speaker, u.Transcript)
		}
	}
}

func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}
