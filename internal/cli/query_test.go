package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/matzehuels/apkgraph/pkg/errors"
	"github.com/matzehuels/apkgraph/pkg/graph"
)

const testRepo = "testdata/repo.toml"

// runCLI executes the root command with args and returns what it wrote.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	c := New(&out, &errOut, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.ExecuteContext(context.Background())
	if cerr := c.Close(context.Background()); cerr != nil {
		t.Errorf("Close() error: %v", cerr)
	}
	return out.String(), errOut.String(), err
}

func query(args ...string) []string {
	return append([]string{"--repo", testRepo, "--test-mode"}, args...)
}

func TestQuery_Outputs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "diagram",
			args: query("--package", "A"),
			want: "# dependencies of A\nA -> B\nB -> C\nC\n",
		},
		{
			name: "tree",
			args: query("--package", "A", "--ascii-tree"),
			want: "A\n└── B\n    └── C\n",
		},
		{
			name: "tree with cycle",
			args: query("--package", "E", "--ascii-tree"),
			want: "E\n└── F\n    └── E (circular)\n",
		},
		{
			name: "reverse diagram",
			args: query("--package", "C", "--reverse"),
			want: "# dependents of C\nA -> B\nB -> C\nD -> B\n",
		},
		{
			name: "reverse tree",
			args: query("--package", "C", "--reverse", "--ascii-tree"),
			want: strings.Join([]string{
				"Reverse dependencies of C:",
				"A",
				"└── B",
				"    └── C",
				"B",
				"└── C",
				"D",
				"└── B",
				"    └── C",
			}, "\n") + "\n",
		},
		{
			name: "reverse without dependents",
			args: query("--package", "D", "--reverse"),
			want: "No packages depend on D\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, stdout); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuery_JSON(t *testing.T) {
	stdout, _, err := runCLI(t, query("--package", "A", "--format", "json")...)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	g, err := graph.ReadJSON(strings.NewReader(stdout))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, g.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.dot")
	stdout, _, err := runCLI(t, query("--package", "A", "--format", "dot", "-o", path)...)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty when writing to a file", stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"A" -> "B";`)) {
		t.Errorf("DOT output missing edge A -> B:\n%s", data)
	}
}

func TestQuery_ShowConfig(t *testing.T) {
	stdout, _, err := runCLI(t, query("--package", "A", "--show-config", "--ascii-tree")...)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	want := "Configuration parameters:\n" +
		"package: A\n" +
		"repo: testdata/repo.toml\n" +
		"test_mode: true\n" +
		"version: latest\n" +
		"ascii_tree: true\n" +
		"reverse: false\n"
	if !strings.HasPrefix(stdout, want) {
		t.Errorf("stdout = %q, want prefix %q", stdout, want)
	}
}

func TestQuery_MissingRoot(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "unknown package",
			args:    query("--package", "nope"),
			wantMsg: `Error: package "nope" not found in repository`,
		},
		{
			name:    "unknown version",
			args:    query("--package", "A", "--version", "9.9", "--ascii-tree"),
			wantMsg: `Error: package "A" version 9.9 not found in repository`,
		},
		{
			name:    "export unknown package",
			args:    append([]string{"export", "neo4j"}, query("--package", "nope")...),
			wantMsg: `Error: package "nope" not found in repository`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("Execute() error = nil, want a not-found failure")
			}
			if !apperrors.Is(err, apperrors.ErrCodePackageNotFound) {
				t.Errorf("error code = %q, want PACKAGE_NOT_FOUND", apperrors.GetCode(err))
			}
			if got := FormatError(err); !strings.HasPrefix(got, tt.wantMsg) {
				t.Errorf("FormatError() = %q, want prefix %q", got, tt.wantMsg)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want nothing on failure", stdout)
			}
		})
	}
}

func TestQuery_ExactVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo.toml")
	body := "[[package]]\nname = \"A\"\nversion = \"1.0\"\n\n" +
		"[[package]]\nname = \"A\"\nversion = \"2.0\"\ndepends = [\"B\"]\n\n" +
		"[[package]]\nname = \"B\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	args := []string{"--repo", path, "--test-mode", "--package", "A", "--ascii-tree"}

	stdout, _, err := runCLI(t, append(args, "--version", "1.0")...)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if stdout != "A\n" {
		t.Errorf("version 1.0 stdout = %q, want %q", stdout, "A\n")
	}

	stdout, _, err = runCLI(t, args...)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if stdout != "A\n└── B\n" {
		t.Errorf("latest stdout = %q", stdout)
	}
}

func TestQuery_ReverseUnknownTarget(t *testing.T) {
	stdout, _, err := runCLI(t, query("--package", "nope", "--reverse")...)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if stdout != "No packages depend on nope\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestQuery_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantPrefix string
	}{
		{"missing package", query(), "Validation error: "},
		{"bad package name", query("--package", "bad name!"), "Validation error: "},
		{"missing repo", []string{"--package", "A"}, "Validation error: "},
		{"empty version", query("--package", "A", "--version", " "), "Validation error: "},
		{"unknown format", query("--package", "A", "--format", "xml"), "Validation error: "},
		{"binary format to stdout", query("--package", "A", "--format", "png"), "Validation error: "},
		{"missing test file", []string{"--package", "A", "--repo", "testdata/nope.toml", "--test-mode"}, "File error: "},
		{"unreadable index", []string{"--package", "A", "--repo", filepath.Join("testdata", "missing-dir")}, "Error: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("Execute() error = nil, want failure")
			}
			if got := FormatError(err); !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("FormatError() = %q, want prefix %q", got, tt.wantPrefix)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want nothing on failure", stdout)
			}
		})
	}
}

func TestQuery_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apkgraph.toml")
	body := "package = \"A\"\nrepo = \"" + testRepo + "\"\ntest_mode = true\nascii_tree = true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "--config", path)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if stdout != "A\n└── B\n    └── C\n" {
		t.Errorf("stdout = %q", stdout)
	}

	// Flags win over the file.
	stdout, _, err = runCLI(t, "--config", path, "--package", "B")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if stdout != "B\n└── C\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.HasPrefix(stdout, "apkgraph version: ") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestCompletionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(stdout, "apkgraph") {
		t.Error("bash completion does not mention the command name")
	}
}

func TestFormatError(t *testing.T) {
	err := (&queryOpts{pkg: "", repo: "r", version: "latest", format: formatText}).validate()
	if got, want := FormatError(err), "Validation error: package name cannot be empty"; got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}
}
