package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "text")

	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

const scenarioCSV = "A,B,C\n1,-1,x\n0,2,y\n3,,z\n"

func TestRun_Check(t *testing.T) {
	path := writeFile(t, "data.csv", scenarioCSV)

	code, stdout, stderr := runCLI(t, "", "-columns", "A,B", path)
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}

	want := "Warning: Column 'A' contains zeros.\n" +
		"Warning: Column 'B' contains NaN or missing values.\n" +
		"Warning: Column 'B' contains negative values.\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRun_MissingColumns(t *testing.T) {
	path := writeFile(t, "data.csv", "A,B\n1,2\n")

	code, stdout, stderr := runCLI(t, "", "-columns", "A,C,D", path)
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want nothing", stdout)
	}
	if !strings.Contains(stderr, "The following columns are not in the DataFrame: ['C', 'D']") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stderr, "COL001") {
		t.Errorf("stderr = %q, want support code", stderr)
	}
}

func TestRun_Stdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, `[{"v": 0}, {"v": 1}]`, "-columns", "v", "-format", "json", "-")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	if stdout != "Warning: Column 'v' contains zeros.\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRun_ProfileAndOut(t *testing.T) {
	path := writeFile(t, "data.csv", scenarioCSV)
	outPath := filepath.Join(t.TempDir(), "proj.parquet")

	code, stdout, stderr := runCLI(t, "", "-columns", "C,A", "-profile", "-out", outPath, path)
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "COLUMN") || !strings.Contains(stdout, "numeric") {
		t.Errorf("stdout = %q, want profile table", stdout)
	}

	code, stdout, stderr = runCLI(t, "", "-columns", "A", outPath)
	if code != 0 {
		t.Fatalf("reading output: exit = %d, stderr = %s", code, stderr)
	}
	if stdout != "Warning: Column 'A' contains zeros.\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	path := writeFile(t, "data.csv", scenarioCSV)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no columns", []string{path}, 2},
		{"unknown flag", []string{"-bogus"}, 2},
		{"no file", []string{"-columns", "A"}, 1},
		{"missing file", []string{"-columns", "A", filepath.Join(t.TempDir(), "nope.csv")}, 1},
		{"unsupported extension", []string{"-columns", "A", writeFile(t, "data.xlsx", "")}, 1},
		{"query without database", []string{"-columns", "A", "-query", "SELECT 1"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv("DB_URL", "")
			if code, _, _ := runCLI(t, "", tt.args...); code != tt.want {
				t.Errorf("exit = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestRun_ServeStopsOnCancel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() {
		var out, errOut bytes.Buffer
		done <- run(ctx, []string{"serve", "-addr", "127.0.0.1:0"}, strings.NewReader(""), &out, &errOut)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case code := <-done:
		if code != 0 {
			t.Errorf("exit = %d, want 0", code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}
