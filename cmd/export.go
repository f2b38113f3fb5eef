package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikogura/resume-builder/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var exportFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var exportOut string

//nolint:gochecknoglobals // Cobra boilerplate
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored resume",
	Long: `Export the stored resume as JSON, Markdown or YAML.

JSON and YAML contain the whole document. Markdown shows the personal header and
then the active sections in their current order, using the configured locale.

Without --out the file is written to the configured output directory and named
after the person. Use --out - to write to stdout.

Example:
  resume-builder export
  resume-builder export --format json --out resume.json
  resume-builder export --format md --out -`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format: json, md or yaml (default from config)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file, or - for stdout")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	err = withSession(func(ctx context.Context, s *session) (err error) {
		name := exportFormat
		if name == "" {
			name = s.cfg.Defaults.Format
		}

		var format renderer.Format
		format, err = renderer.ParseFormat(name)
		if err != nil {
			return err
		}

		var out []byte
		out, err = s.ws.Export(format)
		if err != nil {
			err = errors.Wrap(err, "failed to export")
			return err
		}

		if exportOut == "-" {
			_, err = os.Stdout.Write(out)
			return err
		}

		path := exportOut
		if path == "" {
			path = filepath.Join(s.cfg.Defaults.OutputDir, renderer.DefaultFilename(s.ws.Document().Personal.FullName, format))
		}

		err = renderer.WriteFile(out, path)
		if err != nil {
			return err
		}

		_, _ = okColor.Print("Exported ")
		fmt.Println(path)
		return err
	})
	return err
}
