// Command colcheck selects columns from a table and reports data quality
// problems in the selection.
//
//	colcheck -columns A,B [-out proj.parquet] [-profile] data.csv
//	colcheck -columns A,B -query "SELECT a AS \"A\", b AS \"B\" FROM t"
//	colcheck serve [-addr :8080]
//
// Warnings go to stdout, logs to stderr. The exit status is 1 when requested
// columns are missing or the table cannot be loaded.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/colcheck/internal/config"
	"github.com/JonMunkholm/colcheck/internal/core"
	"github.com/JonMunkholm/colcheck/internal/logging"
	"github.com/JonMunkholm/colcheck/internal/source"
	"github.com/JonMunkholm/colcheck/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Overload lets a local .env win over the inherited environment.
	envErr := godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "colcheck: %v\n", err)
		return 1
	}

	logging.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)
	if envErr == nil {
		slog.Debug("loaded .env file")
	}

	if len(args) > 0 && args[0] == "serve" {
		return serve(ctx, cfg, args[1:], stderr)
	}
	return check(ctx, cfg, args, stdin, stdout, stderr)
}

func check(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("colcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	columns := fs.String("columns", "", "comma-separated columns to select (required)")
	query := fs.String("query", "", "load the table from this SQL query instead of a file (needs DATABASE_URL)")
	format := fs.String("format", "", "input format: csv, json or parquet (default: from the file extension)")
	out := fs.String("out", "", "write the selected columns to this .csv or .parquet file")
	profile := fs.Bool("profile", false, "print per-column statistics after the warnings")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: colcheck -columns A,B [flags] FILE|-")
		fmt.Fprintln(stderr, "       colcheck -columns A,B -query SQL [flags]")
		fmt.Fprintln(stderr, "       colcheck serve [-addr host:port]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	names := splitColumns(*columns)
	if len(names) == 0 {
		fmt.Fprintln(stderr, "colcheck: -columns is required")
		fs.Usage()
		return 2
	}

	tbl, err := load(ctx, cfg, fs.Args(), *query, *format, stdin)
	if err != nil {
		printError(stderr, err)
		return 1
	}
	slog.Debug("table loaded", "rows", tbl.NumRows(), "columns", tbl.NumCols())

	rep := core.MultiReporter(
		&core.TextReporter{W: stdout},
		&core.LogReporter{Logger: slog.Default(), Level: slog.LevelDebug},
	)
	proj, err := core.SelectColumnsContext(ctx, tbl, names, rep)
	if err != nil {
		printError(stderr, err)
		return 1
	}

	if *profile {
		if err := writeProfiles(stdout, core.Profile(proj)); err != nil {
			printError(stderr, err)
			return 1
		}
	}

	if *out != "" {
		if err := source.Save(*out, proj); err != nil {
			printError(stderr, err)
			return 1
		}
		slog.Info("selection written", "path", *out, "rows", proj.NumRows(), "columns", proj.NumCols())
	}

	return 0
}

// load reads the input table from the query, stdin ("-") or a file path.
func load(ctx context.Context, cfg *config.Config, args []string, query, format string, stdin io.Reader) (*core.Table, error) {
	if query != "" {
		if len(args) > 0 {
			return nil, errors.New("pass either -query or a file, not both")
		}
		return loadQuery(ctx, cfg.Database, query)
	}

	if len(args) != 1 {
		return nil, errors.New("expected exactly one input file")
	}
	path := args[0]

	if path != "-" && format == "" {
		return source.Open(ctx, path)
	}

	f := source.FormatCSV
	if format != "" {
		var err error
		if f, err = source.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	if path == "-" {
		return source.Read(ctx, f, stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return source.Read(ctx, f, file)
}

func loadQuery(ctx context.Context, cfg config.DatabaseConfig, query string) (*core.Table, error) {
	if cfg.URL == "" {
		return nil, errors.New("DATABASE_URL is required for -query")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Debug("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}

	qctx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()
	return source.Query(qctx, pool, query)
}

// printError writes the technical error, plus the support code and action
// when the error is a known one.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "colcheck: %v\n", err)
	if core.IsUserFacing(err) {
		fmt.Fprintln(w, core.FormatUserError(err))
	}
}

func writeProfiles(w io.Writer, profiles []core.ColumnProfile) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tKIND\tROWS\tMISSING\tZEROS\tNEGATIVE\tOUTLIERS\tMIN\tQ1\tMEAN\tQ3\tMAX\tSTDDEV")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d", p.Name, p.Kind, p.Rows, p.Missing, p.Zeros, p.Negative, p.Outliers)
		if p.HasStats() {
			fmt.Fprintf(tw, "\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\n", p.Min, p.Q1, p.Mean, p.Q3, p.Max, p.StdDev)
		} else {
			fmt.Fprint(tw, "\t-\t-\t-\t-\t-\t-\n")
		}
	}
	return tw.Flush()
}

func splitColumns(s string) []string {
	var names []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

func serve(ctx context.Context, cfg *config.Config, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", cfg.Server.Addr(), "listen address")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	slog.Info("configuration loaded", "config", cfg.String())

	limiter := core.NewCheckLimiter(cfg.Check.MaxConcurrent, cfg.Check.MaxWaitTime)
	server := web.NewServer(cfg, limiter)

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		slog.Error("listen failed", "addr", *addr, "error", err)
		return 1
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(ln) }()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server stopped", "error", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	slog.Info("shutting down", "active_checks", limiter.ActiveCount())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return 1
	}
	if err := <-errCh; err != nil {
		slog.Error("server stopped", "error", err)
		return 1
	}
	slog.Info("server stopped")
	return 0
}
