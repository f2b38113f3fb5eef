package cmd

import (
	"context"
	"fmt"

	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Work with custom sections",
}

//nolint:gochecknoglobals // Cobra boilerplate
var customModeCmd = &cobra.Command{
	Use:   "mode <id> <list|fields|text>",
	Short: "Switch how a custom section is written",
	Long: `Switch a custom section between a bulleted list, label/value fields and free
text. The content is carried over, so switching back returns what was there.`,
	Args: cobra.ExactArgs(2),
	RunE: runCustomMode,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(customCmd)
	customCmd.AddCommand(customModeCmd)
}

func runCustomMode(cmd *cobra.Command, args []string) (err error) {
	id := args[0]
	if parsed, ok := resume.ParseCustomKey(id); ok {
		id = parsed
	}

	mode := resume.Mode(args[1])
	if !mode.Valid() {
		err = errors.Errorf("unknown mode %q (use list, fields or text)", args[1])
		return err
	}

	err = withSession(func(ctx context.Context, s *session) (err error) {
		found := false
		var lines []string
		s.ws.Store.Update(func(draft *resume.Data) {
			idx := draft.FindCustomSection(id)
			if idx < 0 {
				return
			}
			found = true
			draft.CustomSections[idx].SetMode(mode)
			lines = draft.CustomSections[idx].Lines()
		})
		if !found {
			err = errors.Errorf("no custom section with id %q", id)
			return err
		}

		_, _ = okColor.Printf("Mode set to %s\n", mode)
		for _, line := range lines {
			fmt.Printf("  %s\n", line)
		}
		return err
	})
	return err
}
