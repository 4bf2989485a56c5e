package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BonHowi/plowgen/internal/customer"
	"github.com/BonHowi/plowgen/internal/project"
)

// execute runs the root command with the given arguments and returns the
// combined output. The root command is shared, so these tests do not run
// in parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeRecord(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerateSingleRecord(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	record := writeRecord(t, inDir, "acme.json",
		`{"brand_name": "Acme Co.", "web_tracking": "Yes", "historical_data_since": "2023-01-01"}`)

	out, err := execute(t, "generate", "-i", record, "-I", "", "-o", outDir, "--on-collision", "fail")
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, out)
	}

	projectDir := filepath.Join(outDir, "dbt_acme-co")
	for _, name := range []string{"packages.yml", "dbt_project.yml", "profiles.example.yml", "README.md"} {
		if _, err := os.Stat(filepath.Join(projectDir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(projectDir, "dbt_project.yml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, frag := range []string{
		`name: "snowplow_unified_for_acme-co"`,
		`snowplow__enable_web_data: true`,
		`snowplow__enable_mobile_data: false`,
	} {
		if !strings.Contains(string(data), frag) {
			t.Errorf("dbt_project.yml missing %q", frag)
		}
	}

	if !strings.Contains(out, "1 generated") {
		t.Errorf("output missing summary:\n%s", out)
	}
}

func TestGenerateBatchDirectory(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeRecord(t, inDir, "b.json", `{"brand_name": "Globex"}`)
	writeRecord(t, inDir, "a.json", `{"brand_name": "Initech"}`)

	out, err := execute(t, "generate", "-i", "", "-I", inDir, "-o", outDir, "--on-collision", "fail")
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, out)
	}

	for _, dir := range []string{"dbt_globex", "dbt_initech"} {
		if _, err := os.Stat(filepath.Join(outDir, dir, "dbt_project.yml")); err != nil {
			t.Errorf("missing project %s: %v", dir, err)
		}
	}
	if !strings.Contains(out, "2 generated") {
		t.Errorf("output missing summary:\n%s", out)
	}
}

func TestGenerateMissingInputFileFails(t *testing.T) {
	outDir := t.TempDir()
	_, err := execute(t, "generate", "-i", filepath.Join(outDir, "nope.json"), "-I", "", "-o", outDir,
		"--on-collision", "fail")
	if err == nil {
		t.Fatal("generate with missing input succeeded, want error")
	}
}

func TestGenerateNoInputsFails(t *testing.T) {
	outDir := t.TempDir()
	_, err := execute(t, "generate", "-i", "", "-I", "", "-o", outDir, "--on-collision", "fail")
	if !errors.Is(err, customer.ErrNoInputs) {
		t.Errorf("error = %v, want ErrNoInputs", err)
	}
}

func TestGenerateCollisionFailPolicy(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	record := writeRecord(t, inDir, "acme.json", `{"brand_name": "Acme"}`)
	if err := os.MkdirAll(filepath.Join(outDir, "dbt_acme"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "generate", "-i", record, "-I", "", "-o", outDir, "--on-collision", "fail")
	if !errors.Is(err, project.ErrCollision) {
		t.Errorf("error = %v, want ErrCollision", err)
	}
}

func TestGenerateCollisionOverwritePolicy(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	record := writeRecord(t, inDir, "acme.json", `{"brand_name": "Acme"}`)
	stale := filepath.Join(outDir, "dbt_acme", "stale.txt")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "generate", "-i", record, "-I", "", "-o", outDir, "--on-collision", "overwrite")
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Error("stale file survived overwrite policy")
	}
}

func TestGenerateInvalidCollisionPolicy(t *testing.T) {
	inDir := t.TempDir()
	record := writeRecord(t, inDir, "acme.json", `{"brand_name": "Acme"}`)

	_, err := execute(t, "generate", "-i", record, "-I", "", "-o", t.TempDir(), "--on-collision", "merge")
	if err == nil {
		t.Fatal("invalid policy accepted, want error")
	}
}
