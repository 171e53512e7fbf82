package fourenginecli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunSolvePrintsScore(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := Run([]string{"solve", "4"}, nil, &out, &errOut); err != nil {
		t.Fatalf("Run: %v (stderr: %s)", err, errOut.String())
	}
	if !strings.Contains(out.String(), "score 2") {
		t.Errorf("output %q does not contain the expected score", out.String())
	}
}

func TestRunSolveRejectsMissingArgument(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := Run([]string{"solve"}, nil, &out, &errOut); err == nil {
		t.Fatal("expected an error for a missing variation argument")
	}
}

func TestRunTestReportsPassAndFail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.txt")
	if err := os.WriteFile(path, []byte("4 2\n45 99\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out, errOut bytes.Buffer
	err := Run([]string{"test", path}, nil, &out, &errOut)
	if err == nil {
		t.Fatal("expected an error because one of the two cases fails")
	}
	if !strings.Contains(out.String(), "ok   4") {
		t.Errorf("expected case %q to pass, got:\n%s", "4", out.String())
	}
	if !strings.Contains(out.String(), "FAIL 45") {
		t.Errorf("expected case %q to fail, got:\n%s", "45", out.String())
	}
	if !strings.Contains(out.String(), "1/2 passed") {
		t.Errorf("expected a 1/2 summary, got:\n%s", out.String())
	}
}

func TestRunGenerateBookWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")

	var out, errOut bytes.Buffer
	if err := Run([]string{"generate-book", "--ply", "2", "--out", path}, nil, &out, &errOut); err != nil {
		t.Fatalf("Run: %v (stderr: %s)", err, errOut.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected a non-empty generated book file")
	}
}

func TestRunInteractiveEchoesScores(t *testing.T) {
	stdin := strings.NewReader("4\n\nquit\n45\n")
	var out, errOut bytes.Buffer
	if err := Run([]string{"--no-book"}, stdin, &out, &errOut); err != nil {
		t.Fatalf("Run: %v (stderr: %s)", err, errOut.String())
	}
	if !strings.Contains(out.String(), "score 2") {
		t.Errorf("expected a score line for %q, got:\n%s", "4", out.String())
	}
	if strings.Contains(out.String(), "score -1") {
		t.Errorf("quit should have stopped before the %q line, got:\n%s", "45", out.String())
	}
}
