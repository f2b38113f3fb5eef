package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nikogura/resume-builder/pkg/importer"
	"github.com/nikogura/resume-builder/pkg/renderer"
	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var normalizeOut string

//nolint:gochecknoglobals // Cobra boilerplate
var normalizeCmd = &cobra.Command{
	Use:   "normalize <file|url>",
	Short: "Print a JSON file in the current resume shape",
	Long: `Read any JSON value, upgrade it to the current resume shape and print it.
Older field names are renamed, missing fields and ids are filled in and values of
the wrong type are replaced with empty ones. Stored state is not touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().StringVarP(&normalizeOut, "out", "o", "", "Output file (default stdout)")
}

func runNormalize(cmd *cobra.Command, args []string) (err error) {
	path := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var data []byte
	data, err = importer.Fetch(ctx, path)
	if err != nil {
		return err
	}

	var raw any
	err = json.Unmarshal(data, &raw)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse %s", path)
		return err
	}

	var out []byte
	out, err = renderer.JSON(resume.Normalize(raw))
	if err != nil {
		return err
	}

	if normalizeOut == "" {
		_, err = os.Stdout.Write(out)
		return err
	}

	err = renderer.WriteFile(out, normalizeOut)
	if err != nil {
		return err
	}
	if getVerbose() {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", normalizeOut)
	}
	return err
}
