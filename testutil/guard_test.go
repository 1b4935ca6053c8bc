package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingTB struct {
	testing.TB
	failed string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.failed = format
}

func writeFile(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"internal", InternalImportForbidden, "astrobrasil/internal/core", true},
		{"internal", InternalImportForbidden, "astrobrasil/pkg/domain", false},
		{"internal", InternalImportForbidden, "notinternal", false},
		{"infra", InfraImportForbidden, "astrobrasil/internal/infra/blob/s3", true},
		{"infra", InfraImportForbidden, "astrobrasil/internal/infra", true},
		{"infra", InfraImportForbidden, "astrobrasil/internal/blob", false},
		{"driver", DriverImportForbidden, "modernc.org/sqlite", true},
		{"driver", DriverImportForbidden, "github.com/jackc/pgx/v5/stdlib", true},
		{"driver", DriverImportForbidden, "github.com/aws/aws-sdk-go-v2/service/s3", true},
		{"driver", DriverImportForbidden, "go.uber.org/zap", false},
	}
	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Errorf("%s(%q) = %v, want %v", c.name, c.in, got, c.want)
		}
	}
}

func TestAssertNoDirectImportsPasses(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package tmp\nimport (\n\t\"fmt\"\n\talias \"context\"\n)\nvar _ = fmt.Sprint\nvar _ alias.Context\n")
	writeFile(t, dir, "a_test.go", "package tmp\nimport \"astrobrasil/internal/core\"\n")
	writeFile(t, dir, "notes.txt", "import \"astrobrasil/internal/core\"")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "sub"), "b.go", "package sub\nimport \"astrobrasil/internal/core\"\n")

	AssertNoDirectImports(t, dir, InternalImportForbidden, "test files and subdirectories are skipped")
}

func TestAssertNoDirectImportsReportsViolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package tmp\nimport _ \"modernc.org/sqlite\"\n")

	rec := &recordingTB{TB: t}
	AssertNoDirectImports(rec, dir, DriverImportForbidden, "drivers")
	if !strings.Contains(rec.failed, "forbidden imports") {
		t.Fatalf("expected violation, got %q", rec.failed)
	}
}

func TestAssertNoDirectImportsReportsScanErrors(t *testing.T) {
	rec := &recordingTB{TB: t}
	AssertNoDirectImports(rec, filepath.Join(t.TempDir(), "missing"), InternalImportForbidden, "missing")
	if !strings.HasPrefix(rec.failed, "scan") {
		t.Fatalf("expected scan failure, got %q", rec.failed)
	}

	dir := t.TempDir()
	writeFile(t, dir, "broken.go", "package tmp\nimport (\n")
	rec = &recordingTB{TB: t}
	AssertNoDirectImports(rec, dir, InternalImportForbidden, "broken")
	if !strings.HasPrefix(rec.failed, "scan") {
		t.Fatalf("expected parse failure, got %q", rec.failed)
	}
}
