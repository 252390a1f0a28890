package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/JonMunkholm/colcheck/internal/core"
	"github.com/JonMunkholm/colcheck/internal/logging"
	"github.com/JonMunkholm/colcheck/internal/source"
)

// WarningResponse is one quality finding.
type WarningResponse struct {
	Column  string `json:"column"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ProfileResponse is a core.ColumnProfile with statistics left null when
// they are undefined or not finite.
type ProfileResponse struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Rows     int      `json:"rows"`
	Missing  int      `json:"missing"`
	Zeros    int      `json:"zeros"`
	Negative int      `json:"negative"`
	Outliers int      `json:"outliers"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Mean     *float64 `json:"mean"`
	StdDev   *float64 `json:"stdDev"`
	Q1       *float64 `json:"q1"`
	Q3       *float64 `json:"q3"`
	Lower    *float64 `json:"lower"`
	Upper    *float64 `json:"upper"`
}

// CheckResponse is the result of one POST /api/check.
type CheckResponse struct {
	ID       string            `json:"id"`
	Columns  []string          `json:"columns"`
	Rows     int               `json:"rows"`
	Warnings []WarningResponse `json:"warnings"`
	Profiles []ProfileResponse `json:"profiles"`
}

// handleCheck loads the posted table, projects the requested columns and
// returns the warnings and profiles of the projection.
//
// Two request shapes are accepted:
//   - raw body, format from ?format= or Content-Type, columns from ?columns=
//   - multipart form with a "file" field and a "columns" field
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.limiter.Acquire(r.Context()); err != nil {
		respondError(w, r, err, statusFor(err, http.StatusServiceUnavailable))
		return
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Check.Timeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Check.MaxFileSize)

	tbl, names, err := s.loadRequest(ctx, r)
	if err != nil {
		respondError(w, r, err, statusFor(err, http.StatusBadRequest))
		return
	}

	id := uuid.New()
	logger := logging.WithFields(ctx, "check_id", id.String())
	logger.Info("check started", "rows", tbl.NumRows(), "columns", names)

	collector := &core.Collector{}
	rep := core.MultiReporter(collector, &core.LogReporter{Logger: logger, Level: slog.LevelWarn})

	proj, err := core.SelectColumnsContext(ctx, tbl, names, rep)
	if err != nil {
		respondError(w, r, err, statusFor(err, http.StatusInternalServerError))
		return
	}

	resp := CheckResponse{
		ID:       id.String(),
		Columns:  proj.ColumnNames(),
		Rows:     proj.NumRows(),
		Warnings: toWarningResponses(collector.Warnings()),
		Profiles: toProfileResponses(core.Profile(proj)),
	}
	logger.Info("check completed", "warnings", len(resp.Warnings))

	if wantsJSON(r) {
		writeJSON(w, r, http.StatusOK, resp)
		return
	}
	renderHTML(w, r, http.StatusOK, checkReport(resp), isHTMX(r))
}

// loadRequest decodes the table and the column list from r.
func (s *Server) loadRequest(ctx context.Context, r *http.Request) (*core.Table, []string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return s.loadMultipart(ctx, r)
	}

	names := parseColumns(r.URL.Query().Get("columns"))
	if len(names) == 0 {
		return nil, nil, errNoColumns
	}

	hint := r.URL.Query().Get("format")
	if hint == "" {
		hint = r.Header.Get("Content-Type")
	}
	format, err := source.ParseFormat(hint)
	if err != nil {
		return nil, nil, err
	}

	tbl, err := source.Read(ctx, format, r.Body)
	if err != nil {
		return nil, nil, wrapBodyError(err)
	}
	return tbl, names, nil
}

func (s *Server) loadMultipart(ctx context.Context, r *http.Request) (*core.Table, []string, error) {
	if err := r.ParseMultipartForm(s.cfg.Check.MaxFileSize); err != nil {
		return nil, nil, wrapBodyError(err)
	}

	names := parseColumns(r.FormValue("columns"))
	if len(names) == 0 {
		return nil, nil, errNoColumns
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, errNoFile
	}
	defer file.Close()

	format := source.DetectFormat(header.Filename)
	if hint := r.FormValue("format"); hint != "" {
		if format, err = source.ParseFormat(hint); err != nil {
			return nil, nil, err
		}
	}
	if format == source.FormatUnknown {
		return nil, nil, fmt.Errorf("%w: %s", source.ErrUnsupportedFormat, filepath.Ext(header.Filename))
	}

	tbl, err := source.Read(ctx, format, file)
	if err != nil {
		return nil, nil, wrapBodyError(err)
	}
	return tbl, names, nil
}

// wrapBodyError labels body size violations so they map to FILE001.
func wrapBodyError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("file too large: %w", err)
	}
	return err
}

// parseColumns splits a comma-separated list, trimming blanks. Order and
// repeats are preserved.
func parseColumns(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

func toWarningResponses(ws []core.Warning) []WarningResponse {
	out := make([]WarningResponse, len(ws))
	for i, w := range ws {
		out[i] = WarningResponse{Column: w.Column, Kind: w.Kind.String(), Message: w.Message()}
	}
	return out
}

func toProfileResponses(ps []core.ColumnProfile) []ProfileResponse {
	out := make([]ProfileResponse, len(ps))
	for i, p := range ps {
		pr := ProfileResponse{
			Name:     p.Name,
			Kind:     p.Kind,
			Rows:     p.Rows,
			Missing:  p.Missing,
			Zeros:    p.Zeros,
			Negative: p.Negative,
			Outliers: p.Outliers,
		}
		if p.HasStats() {
			pr.Min, pr.Max = finite(p.Min), finite(p.Max)
			pr.Mean, pr.StdDev = finite(p.Mean), finite(p.StdDev)
			pr.Q1, pr.Q3 = finite(p.Q1), finite(p.Q3)
			pr.Lower, pr.Upper = finite(p.Lower), finite(p.Upper)
		}
		out[i] = pr
	}
	return out
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// handleHealth reports liveness plus the check limiter state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"checks": s.limiter.Status(),
	})
}

// handleStatus returns the current state of the check limiter.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.limiter.Status())
}

// handleIndex serves the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, r, http.StatusOK, indexPage(), false)
}
