//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/pdiddy/refconvert/internal/convert"
	"github.com/pdiddy/refconvert/pkg/types"
)

// Convert renders every docs/_data/<study>_refs.json into
// _includes/publications/<study>_refs.html.
func Convert() error {
	mg.Deps(Init)

	c := convert.New(types.ConverterConfig{}, os.Stdout, nil)
	result, err := c.ConvertAll()
	if err != nil {
		return err
	}
	if result.HasFailures() {
		fmt.Printf("[convert] %d of %d file(s) failed; see messages above.\n", result.Failed, result.Total())
	}
	return nil
}
