package cmd

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"text/scanner"

	"github.com/google/go-cmp/cmp"
)

func TestGenFlag_Set(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		Name string
		Arg  string
		dir  string
		opts map[string]interface{}
		err  string
	}{
		{Name: "AbsPath", Arg: "/testdir", dir: "/testdir"},
		{Name: "RelPath", Arg: "testdir/sub", dir: filepath.Join(wd, "testdir", "sub")},
		{Name: "DotSlash", Arg: "./out", dir: filepath.Join(wd, "out")},
		{Name: "Dot", Arg: ".", dir: wd},
		{
			Name: "OptsThenDir",
			Arg:  "lang=go,pkg=api:/testdir",
			dir:  "/testdir",
			opts: map[string]interface{}{"lang": "go", "pkg": "api"},
		},
		{
			Name: "BoolOpt",
			Arg:  "toc=false:/docs",
			dir:  "/docs",
			opts: map[string]interface{}{"toc": false},
		},
		{
			Name: "FlagOpt",
			Arg:  "title:/docs",
			dir:  "/docs",
			opts: map[string]interface{}{"title": true},
		},
		{
			Name: "MultiString",
			Arg:  "tag=a,tag=b,tag=c:/docs",
			dir:  "/docs",
			opts: map[string]interface{}{"tag": []string{"a", "b", "c"}},
		},
		{
			Name: "MultiInt",
			Arg:  "n=1,n=2:/docs",
			dir:  "/docs",
			opts: map[string]interface{}{"n": []int64{1, 2}},
		},
		{
			Name: "Float",
			Arg:  "rate=0.5:/docs",
			dir:  "/docs",
			opts: map[string]interface{}{"rate": 0.5},
		},
		{
			Name: "Malformed",
			Arg:  "a=[",
			err:  "discogen: unexpected character in generator option, a, value: [",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			opts := make(map[string]interface{})
			geners := new([]*genFlag)
			dirs := new([]string)
			f := &genFlag{
				opts:   opts,
				outDir: new(string),
				geners: geners,
				dirs:   dirs,
				fp:     &fparser{Scanner: new(scanner.Scanner)},
			}

			err := f.Set(testCase.Arg)
			if testCase.err != "" {
				if err == nil || err.Error() != testCase.err {
					t.Fatalf("expected error: %q but got: %v", testCase.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if *f.outDir != testCase.dir {
				t.Fatalf("expected out dir: %q but got: %q", testCase.dir, *f.outDir)
			}
			if len(*geners) != 1 || (*geners)[0] != f {
				t.Fatalf("expected the flag to register itself but got: %v", *geners)
			}
			if diff := cmp.Diff([]string{testCase.dir}, *dirs); diff != "" {
				t.Fatalf("unexpected dirs (-want +got):\n%s", diff)
			}

			ex := testCase.opts
			if ex == nil {
				ex = map[string]interface{}{}
			}
			if diff := cmp.Diff(ex, opts); diff != "" {
				t.Fatalf("unexpected opts (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenFlag_SetOpt(t *testing.T) {
	opts := make(map[string]interface{})
	f := &genFlag{
		opts:  opts,
		fp:    &fparser{Scanner: new(scanner.Scanner)},
		isOpt: true,
	}

	if err := f.Set("title=Budgets,toc=false"); err != nil {
		t.Fatal(err)
	}
	if err := f.Set(`desc="Budget docs"`); err != nil {
		t.Fatal(err)
	}

	ex := map[string]interface{}{
		"title": "Budgets",
		"toc":   false,
		"desc":  `"Budget docs"`,
	}
	if diff := cmp.Diff(ex, opts); diff != "" {
		t.Fatalf("unexpected opts (-want +got):\n%s", diff)
	}
}

func TestHeaderFlag_Set(t *testing.T) {
	headers := make(http.Header)
	f := &headerFlag{value: &headers}

	if err := f.Set("Authorization=Bearer abc"); err != nil {
		t.Fatal(err)
	}
	if err := f.Set("X-A=1,X-B=2"); err != nil {
		t.Fatal(err)
	}
	if err := f.Set("X-A=3"); err != nil {
		t.Fatal(err)
	}

	if got := headers.Get("Authorization"); got != "Bearer abc" {
		t.Fatalf("unexpected authorization header: %q", got)
	}
	if diff := cmp.Diff([]string{"1", "3"}, headers.Values("X-A")); diff != "" {
		t.Fatalf("unexpected X-A values (-want +got):\n%s", diff)
	}
	if got := headers.Get("X-B"); got != "2" {
		t.Fatalf("unexpected X-B header: %q", got)
	}

	if err := f.Set("noequals"); err == nil {
		t.Fatal("expected an error for a malformed header")
	}
}
