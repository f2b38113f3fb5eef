package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikogura/resume-builder/pkg/importer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var importCmd = &cobra.Command{
	Use:   "import <file|url>",
	Short: "Replace the stored resume with a JSON file",
	Long: `Import a resume from a JSON file or http(s) URL, either a plain document or an export wrapped
as {"data": {...}}. The file must carry a "personal" section. Older field names are
accepted and missing fields are filled in.

On success the active sections are re-derived from the imported content. On failure
the stored resume is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) (err error) {
	path := args[0]

	err = withSession(func(ctx context.Context, s *session) (err error) {
		var data []byte
		data, err = importer.Fetch(ctx, path)
		if err != nil {
			return err
		}

		err = s.ws.Import(data)
		if err != nil {
			var importErr *importer.Error
			if errors.As(err, &importErr) {
				_, _ = warnColor.Printf("Import failed: %s\n", importErr.Message)
			}
			return err
		}

		doc := s.ws.Document()
		_, _ = okColor.Printf("Imported %s\n", path)
		if doc.Personal.FullName != "" {
			fmt.Printf("Name: %s\n", doc.Personal.FullName)
		}
		fmt.Printf("Active sections: %s\n", strings.Join(s.ws.Sections.Order(), ", "))
		return err
	})
	return err
}
