package web

// render.go holds the HTML views. They are templ components built with
// templ.ComponentFunc and escape every dynamic value with templ.EscapeString.

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/colcheck/internal/logging"
)

// renderHTML writes c with the given status. Full pages are wrapped in the
// layout; HTMX requests get the bare fragment.
func renderHTML(w http.ResponseWriter, r *http.Request, status int, c templ.Component, fragment bool) {
	if !fragment {
		c = layout("colcheck", c)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render error", "error", err)
	}
}

// htmlWriter accumulates the first write error so views can write freely
// and check once.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title><style>` + pageStyle + `</style></head><body><main>`)
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2937}` +
	`table{border-collapse:collapse;margin:1rem 0}` +
	`th,td{border:1px solid #d1d5db;padding:.25rem .6rem;text-align:right}` +
	`th:first-child,td:first-child{text-align:left}` +
	`.alert{border:1px solid #fca5a5;background:#fef2f2;padding:1rem}` +
	`.ok{color:#15803d}.warn{color:#b45309}`

// indexPage is the upload form.
func indexPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>Column check</h1>`)
		h.raw(`<form method="post" action="/check" enctype="multipart/form-data">`)
		h.raw(`<p><label>Table (CSV, JSON or Parquet) <input type="file" name="file" required></label></p>`)
		h.raw(`<p><label>Columns <input type="text" name="columns" placeholder="A,B" required></label></p>`)
		h.raw(`<p><button type="submit">Check</button></p></form>`)
		return h.err
	})
}

// checkReport renders a CheckResponse as a warnings list and profile table.
func checkReport(resp CheckResponse) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<section id="report"><h1>Check `)
		h.text(resp.ID)
		h.raw(`</h1><p>`)
		h.text(strconv.Itoa(resp.Rows))
		h.raw(` rows, columns: `)
		h.text(strings.Join(resp.Columns, ", "))
		h.raw(`</p>`)

		if len(resp.Warnings) == 0 {
			h.raw(`<p class="ok">No data quality warnings.</p>`)
		} else {
			h.raw(`<h2>Warnings</h2><ul class="warn">`)
			for _, wr := range resp.Warnings {
				h.raw(`<li>`)
				h.text(wr.Message)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}

		h.raw(`<h2>Profiles</h2><table><thead><tr>`)
		for _, th := range []string{"Column", "Kind", "Rows", "Missing", "Zeros", "Negative", "Outliers", "Min", "Q1", "Mean", "Q3", "Max", "Std dev"} {
			h.rawf(`<th>%s</th>`, templ.EscapeString(th))
		}
		h.raw(`</tr></thead><tbody>`)
		for _, p := range resp.Profiles {
			h.raw(`<tr><td>`)
			h.text(p.Name)
			h.raw(`</td><td>`)
			h.text(p.Kind)
			h.raw(`</td>`)
			for _, n := range []int{p.Rows, p.Missing, p.Zeros, p.Negative, p.Outliers} {
				h.rawf(`<td>%d</td>`, n)
			}
			for _, v := range []*float64{p.Min, p.Q1, p.Mean, p.Q3, p.Max, p.StdDev} {
				h.raw(`<td>`)
				h.text(formatStat(v))
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table></section>`)
		return h.err
	})
}

// errorAlert renders an ErrorResponse, listing missing columns when present.
func errorAlert(resp ErrorResponse) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="alert" role="alert"><strong>`)
		h.text(resp.Message)
		h.raw(`</strong> <code>`)
		h.text(resp.Code)
		h.raw(`</code>`)
		if resp.Action != "" {
			h.raw(`<p>`)
			h.text(resp.Action)
			h.raw(`</p>`)
		}
		if len(resp.Missing) > 0 {
			h.raw(`<p>Missing columns:</p><ul>`)
			for _, name := range resp.Missing {
				h.raw(`<li>`)
				h.text(name)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

func formatStat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}
