package cmd

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func TestChainPreRunEs(t *testing.T) {
	var calls []int
	boom := errors.New("boom")

	runE := chainPreRunEs(
		func(*cobra.Command, []string) error { calls = append(calls, 1); return nil },
		func(*cobra.Command, []string) error { calls = append(calls, 2); return boom },
		func(*cobra.Command, []string) error { calls = append(calls, 3); return nil },
	)

	err := runE(nil, nil)
	if err != boom {
		t.Fatalf("expected error: %v but got: %v", boom, err)
	}
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Fatalf("expected the chain to stop after the failing hook but got calls: %v", calls)
	}
}

func TestValidateFilenames(t *testing.T) {
	err := validateFilenames(nil, []string{"books-v1.json", "/specs/ping-v1.json"})
	if err != nil {
		t.Fatal(err)
	}

	err = validateFilenames(nil, []string{"books-v1.json", "books-v1.yaml"})
	if err == nil {
		t.Fatal("expected an error for a non discovery document")
	}
	if ex := "discogen: invalid file extension: books-v1.yaml"; err.Error() != ex {
		t.Fatalf("expected error: %q but got: %q", ex, err.Error())
	}
}

func TestInitGenDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	dirs := []string{"/out/docs", "/out/readme"}

	err := initGenDirs(fs, &dirs)(nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, dir := range dirs {
		exists, err := afero.DirExists(fs, dir)
		if err != nil {
			t.Fatal(err)
		}
		if !exists {
			t.Fatalf("expected directory to exist: %s", dir)
		}
	}
}
