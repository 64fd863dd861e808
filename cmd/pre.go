package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func chainPreRunEs(preRunEs ...func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		for i := 0; i < len(preRunEs) && err == nil; i++ {
			err = preRunEs[i](cmd, args)
		}
		return
	}
}

// validateFilenames validates that only discovery documents are provided.
func validateFilenames(cmd *cobra.Command, args []string) error {
	for _, fileName := range args {
		if filepath.Ext(fileName) != ".json" {
			return fmt.Errorf("discogen: invalid file extension: %s", fileName)
		}
	}

	return nil
}

// initGenDirs initializes each directory each generator will be outputting to.
func initGenDirs(fs afero.Fs, dirs *[]string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		for _, dir := range *dirs {
			zap.S().Info("creating directory:", dir)
			err = fs.MkdirAll(dir, 0755)
			if err != nil {
				break
			}
		}
		return
	}
}
