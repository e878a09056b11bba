package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runCLI(t, "-version")
	if code != exitOK {
		t.Fatalf("exit = %d, want 0", code)
	}
	if !strings.HasPrefix(out, "ordtree dev\n") {
		t.Errorf("version output = %q", out)
	}
}

func TestRunHelp(t *testing.T) {
	code, _, errOut := runCLI(t, "-help")
	if code != exitOK {
		t.Fatalf("exit = %d, want 0", code)
	}
	if !strings.Contains(errOut, "Usage: ordtree") {
		t.Errorf("help output = %q", errOut)
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"-bogus"}, "bogus"},
		{"unknown command", []string{"plant"}, `unknown command "plant"`},
		{"bad log level", []string{"-log-level", "loud"}, "invalid log level"},
		{"script without file", []string{"script"}, "exactly one FILE"},
		{"watch without script", []string{"-watch", "demo"}, "-watch only applies"},
		{"negative size", []string{"-size", "-1", "export"}, "demo.size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.args...)
			if code != exitUsage {
				t.Errorf("exit = %d, want %d", code, exitUsage)
			}
			if !strings.Contains(errOut, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", errOut, tt.want)
			}
		})
	}
}

func TestRunExportFromInput(t *testing.T) {
	input := writeTemp(t, "values.json", `{"values": [7, 3, 3, 9, 1]}`)

	code, out, errOut := runCLI(t, "-input", input, "export")
	if code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, errOut)
	}

	doc := gjson.Parse(out)
	if got := doc.Get("inOrder").String(); got != "[1,3,7,9]" {
		t.Errorf("inOrder = %s, want [1,3,7,9]", got)
	}
	if got := doc.Get("levelOrder.0").Int(); got != 3 {
		t.Errorf("root = %d, want 3", got)
	}
}

func TestRunExportRandomUsesConfig(t *testing.T) {
	cfg := writeTemp(t, "ordtree.toml", "[demo]\nsize = 40\nmaxValue = 10\nseed = 7\n")

	code, out, errOut := runCLI(t, "-config", cfg, "export")
	if code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, errOut)
	}
	// 40 draws from [2, 11] leave at most 10 distinct values.
	if n := gjson.Get(out, "len").Int(); n < 1 || n > 10 {
		t.Errorf("len = %d, want 1..10", n)
	}

	// -seed and -size override the file.
	code, out, _ = runCLI(t, "-config", cfg, "-size", "0", "export")
	if code != exitOK {
		t.Fatalf("exit = %d", code)
	}
	if n := gjson.Get(out, "len").Int(); n != 0 {
		t.Errorf("len = %d, want 0 with -size 0", n)
	}
}

func TestRunDemo(t *testing.T) {
	input := writeTemp(t, "values.txt", "7 3 3 9 1\n")

	code, out, errOut := runCLI(t, "-input", input, "-seed", "3")
	if code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, errOut)
	}
	for _, want := range []string{"Creating new tree...", "In-Order: [1 3 7 9]", "Unbalancing tree..."} {
		if !strings.Contains(out, want) {
			t.Errorf("demo output missing %q:\n%s", want, out)
		}
	}
}

func TestRunScript(t *testing.T) {
	path := writeTemp(t, "shape.lua", `
local t = ordtree.build({5, 2, 8})
t:delete(5)
print(table.concat(t:levelorder(), " "))
`)

	code, out, errOut := runCLI(t, "-log-level", "debug", "script", path)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, errOut)
	}
	if out != "8 2\n" {
		t.Errorf("script output = %q, want %q", out, "8 2\n")
	}
	if !strings.Contains(errOut, "run=") {
		t.Errorf("debug log should carry a run id:\n%s", errOut)
	}
}

func TestRunScriptFailure(t *testing.T) {
	path := writeTemp(t, "bad.lua", `error("nope")`)

	code, _, errOut := runCLI(t, "script", path)
	if code != exitError {
		t.Errorf("exit = %d, want %d", code, exitError)
	}
	if !strings.Contains(errOut, "nope") {
		t.Errorf("stderr = %q, want the script error", errOut)
	}
}

func TestRunMissingConfig(t *testing.T) {
	code, _, errOut := runCLI(t, "-config", filepath.Join(t.TempDir(), "none.toml"))
	if code != exitError {
		t.Errorf("exit = %d, want %d", code, exitError)
	}
	if !strings.Contains(errOut, "config file not found") {
		t.Errorf("stderr = %q", errOut)
	}
}
