package gen

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTestCtx(t *testing.T) {
	ctx := NewTestCtx()

	for _, name := range []string{"index.md", "schemas.md"} {
		f, err := ctx.Open(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err = f.Write([]byte("# " + name + "\n")); err != nil {
			t.Fatal(err)
		}
		if err = f.Close(); err != nil {
			t.Fatal(err)
		}
	}

	if diff := cmp.Diff([]string{"index.md", "schemas.md"}, ctx.Files()); diff != "" {
		t.Fatalf("unexpected files (-want +got):\n%s", diff)
	}
	if out := string(ctx.File("index.md")); out != "# index.md\n" {
		t.Fatalf("unexpected contents: %q", out)
	}
	if out := ctx.File("nope.md"); out != nil {
		t.Fatalf("expected nil contents but got: %q", out)
	}

	// Reopening a file must return the same buffer.
	f, err := ctx.Open("index.md")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = f.Write([]byte("more\n")); err != nil {
		t.Fatal(err)
	}
	if out := string(ctx.File("index.md")); out != "# index.md\nmore\n" {
		t.Fatalf("unexpected contents: %q", out)
	}
}

func TestContext(t *testing.T) {
	gCtx := NewTestCtx()
	ctx := WithContext(context.Background(), gCtx)

	if got := Context(ctx); got != gCtx {
		t.Fatalf("expected the installed generator context but got: %v", got)
	}
}

func TestGeneratorError(t *testing.T) {
	err := GeneratorError{
		DocName: "books",
		GenName: "doc",
		Msg:     "unknown option: nav",
	}

	ex := "discogen: generator error occurred in doc:books unknown option: nav"
	if err.Error() != ex {
		t.Fatalf("expected: %q but got: %q", ex, err.Error())
	}
}
