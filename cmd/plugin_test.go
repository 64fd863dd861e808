package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/discogen/discogen/disco"
	"github.com/discogen/discogen/gen"
	"github.com/spf13/afero"
)

const echoScript = `#!/bin/sh
in=$(cat)
case "$in" in
	*'"name":"ping"'*) ;;
	*) echo "unexpected document" >&2; exit 1 ;;
esac
case "$in" in
	*'"output_dir":"/out/pkg"'*) ;;
	*) echo "unexpected output dir" >&2; exit 1 ;;
esac
printf '{"files":[{"name":"echo.txt","content":"hello"}]}'
`

const failScript = `#!/bin/sh
echo "boom" >&2
exit 1
`

const refuseScript = `#!/bin/sh
printf '{"files":[],"error":"no can do"}'
`

// installPlugins writes plugin stubs into a directory on PATH.
func installPlugins(t *testing.T) {
	t.Helper()

	bin := t.TempDir()
	for name, script := range map[string]string{
		"discogen-gen-echo":   echoScript,
		"discogen-gen-fail":   failScript,
		"discogen-gen-refuse": refuseScript,
	} {
		if err := os.WriteFile(filepath.Join(bin, name), []byte(script), 0755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestPluginGenerator(t *testing.T) {
	installPlugins(t)

	doc, err := disco.ParseDocument("ping-v1.json", []byte(pingSrc))
	if err != nil {
		t.Fatal(err)
	}

	newCtx := func() (context.Context, afero.Fs) {
		fs := afero.NewMemMapFs()
		return gen.WithContext(context.Background(), &genCtx{fs: fs, dir: "/out/pkg"}), fs
	}

	t.Run("Echo", func(t *testing.T) {
		g := &pluginGenerator{Name: "echo", Prefix: "discogen-gen-"}
		ctx, fs := newCtx()

		if err := g.Generate(ctx, doc, map[string]interface{}{}); err != nil {
			t.Fatal(err)
		}

		b, err := afero.ReadFile(fs, "/out/pkg/echo.txt")
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != "hello" {
			t.Fatalf("unexpected plugin output: %q", string(b))
		}
	})

	t.Run("Stderr", func(t *testing.T) {
		g := &pluginGenerator{Name: "fail", Prefix: "discogen-gen-"}
		ctx, _ := newCtx()

		err := g.Generate(ctx, doc, map[string]interface{}{})
		ex := "discogen: generator error occurred in fail:ping boom"
		if err == nil || err.Error() != ex {
			t.Fatalf("expected error: %q but got: %v", ex, err)
		}
	})

	t.Run("ResponseError", func(t *testing.T) {
		g := &pluginGenerator{Name: "refuse", Prefix: "discogen-gen-"}
		ctx, _ := newCtx()

		err := g.Generate(ctx, doc, map[string]interface{}{})
		ex := "discogen: generator error occurred in refuse:ping no can do"
		if err == nil || err.Error() != ex {
			t.Fatalf("expected error: %q but got: %v", ex, err)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		g := &pluginGenerator{Name: "nope", Prefix: "discogen-gen-"}
		ctx, _ := newCtx()

		err := g.Generate(ctx, doc, map[string]interface{}{})
		if err == nil || !strings.Contains(err.Error(), "executable file not found") {
			t.Fatalf("expected a lookup error but got: %v", err)
		}
	})
}

func TestCLI_Plugins(t *testing.T) {
	installPlugins(t)

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/specs/ping-v1.json", []byte(pingSrc), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewCLI(WithFS(fs))
	c.AllowPlugins("discogen-gen-")

	err := c.Run([]string{
		"discogen", "-I", "/specs",
		"--echo_out", "opt=1:/out/pkg",
		"--echo_opt", "extra=2",
		"ping-v1.json",
	})
	if err != nil {
		t.Fatal(err)
	}

	b, err := afero.ReadFile(fs, "/out/pkg/echo.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Fatalf("unexpected plugin output: %q", string(b))
	}
}
