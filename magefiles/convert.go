//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const sampleInput = "testdata/general-info.csv"

// Sample builds the CLI and converts the sample export in testdata/,
// printing the resulting document.
func Sample() error {
	mg.Deps(Build)

	bin := filepath.Join(binDir, binName)
	if err := sh.RunV(bin, "convert", sampleInput, "--pretty"); err != nil {
		return fmt.Errorf("converting %s: %w", sampleInput, err)
	}
	data, err := os.ReadFile(strings.TrimSuffix(sampleInput, filepath.Ext(sampleInput)) + ".json")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
