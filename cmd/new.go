package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var newSample bool

//nolint:gochecknoglobals // Cobra boilerplate
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new resume",
	Long: `Replace the stored resume with an empty one, or with the built-in sample when
--sample is given. The active sections are derived from the new content.

Example:
  resume-builder new
  resume-builder new --sample`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().BoolVar(&newSample, "sample", false, "Start from the sample resume")
}

func runNew(cmd *cobra.Command, args []string) (err error) {
	err = withSession(func(ctx context.Context, s *session) (err error) {
		if newSample {
			s.ws.LoadSample()
		} else {
			s.ws.Clear()
		}

		_, _ = okColor.Println("New resume created.")
		fmt.Printf("Active sections: %s\n", strings.Join(s.ws.Sections.Order(), ", "))
		return err
	})
	return err
}
