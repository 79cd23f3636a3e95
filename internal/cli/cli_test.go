package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/perm"
)

// newTestCLI returns a CLI whose config and cache live in temporary
// directories.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envRedisURL, "")
	return New(io.Discard, LogInfo)
}

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-cache", "covertower"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	dir, err = cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", "covertower"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	dir, err := configDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-config", "covertower"); dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}

func TestInputOptions(t *testing.T) {
	opts, err := inputOptions([]string{"<a | a^2>"}, "")
	if err != nil || opts.Presentation != "<a | a^2>" || opts.Path != "" {
		t.Errorf("inline: opts = %+v, err = %v", opts, err)
	}

	opts, err = inputOptions(nil, "group.toml")
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(opts.Path) || filepath.Base(opts.Path) != "group.toml" {
		t.Errorf("file: Path = %q, want an absolute path", opts.Path)
	}

	for _, tc := range []struct {
		args []string
		file string
	}{
		{nil, ""},
		{[]string{"<a | a^2>"}, "group.toml"},
	} {
		if _, err := inputOptions(tc.args, tc.file); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("inputOptions(%v, %q) error = %v, want %s", tc.args, tc.file, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestLoadPresentationFromParentDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "s3.txt"), []byte("<a, b | a^2, b^3, (a b)^2>\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	p, err := loadPresentation(nil, "../s3.txt")
	if err != nil {
		t.Fatal(err)
	}
	if p.NumGenerators != 2 || len(p.Relations) != 3 {
		t.Errorf("loaded %v", p)
	}
}

func TestRootCommandRegistersCommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"enumerate", "schedule", "render", "browse", "tables", "serve", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("root command missing %q (have %v)", want, names)
		}
	}
}

func TestScheduleCommand(t *testing.T) {
	c := newTestCLI(t)
	out, err := execute(t, c, "schedule", "<a, b | a^2, b^3, (a b)^2>")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "order: ") {
		t.Errorf("schedule output should start with the generator order:\n%s", out)
	}
	if !strings.Contains(out, "*") {
		t.Errorf("schedule output should mark relations:\n%s", out)
	}
	if !strings.Contains(out, "relations: 3, total length 9\n") {
		t.Errorf("schedule output should summarise the relations:\n%s", out)
	}
}

func TestTablesCommandRaw(t *testing.T) {
	c := newTestCLI(t)
	out, err := execute(t, c, "tables", "-n", "3", "--raw")
	if err != nil {
		t.Fatal(err)
	}
	if want := "0: -1\n1: 0 1 -1\n3: 0 3 4 -1\n"; out != want {
		t.Errorf("tables output = %q, want %q", out, want)
	}
}

func TestTablesCommandClass(t *testing.T) {
	c := newTestCLI(t)
	g := perm.MustSym(4)
	out, err := execute(t, c, "tables", "-n", "4", "--class", "2,3,0,1")
	if err != nil {
		t.Fatal(err)
	}
	p, _ := g.FromImages([]int{2, 3, 0, 1})
	m, _ := g.FromImages([]int{1, 0, 3, 2})
	want := fmt.Sprintf("%s rank 16 type %v ~ %s rank 7\n", g.Format(p), g.CycleType(p), g.Format(m))
	if out != want {
		t.Errorf("tables --class output = %q, want %q", out, want)
	}

	if _, err := execute(t, c, "tables", "-n", "3", "--class", "0,0,1"); !errors.Is(err, errors.ErrCodeInvalidPermutation) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidPermutation)
	}
	if _, err := execute(t, c, "tables", "-n", "3", "--class", "0,x,1"); !errors.Is(err, errors.ErrCodeInvalidPermutation) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidPermutation)
	}
}

func TestTablesCommandRejectsDegree(t *testing.T) {
	c := newTestCLI(t)
	_, err := execute(t, c, "tables", "-n", "9")
	if !errors.Is(err, errors.ErrCodeUnsupportedDegree) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeUnsupportedDegree)
	}
}

func TestCachePathCommand(t *testing.T) {
	c := newTestCLI(t)
	out, err := execute(t, c, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := cacheDir()
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCompletionCommand(t *testing.T) {
	c := newTestCLI(t)
	out, err := execute(t, c, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "covertower") {
		t.Error("bash completion should mention the program name")
	}
	if _, err := execute(t, c, "completion", "tcsh"); err == nil {
		t.Error("expected an error for an unknown shell")
	}
}
