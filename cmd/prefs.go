package cmd

import (
	"context"
	"fmt"

	"github.com/nikogura/resume-builder/pkg/prefs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var templateBase string

//nolint:gochecknoglobals // Cobra boilerplate
var templateAccent string

//nolint:gochecknoglobals // Cobra boilerplate
var templateFont string

//nolint:gochecknoglobals // Cobra boilerplate
var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the editor theme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

//nolint:gochecknoglobals // Cobra boilerplate
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "List, select and manage preview templates",
}

//nolint:gochecknoglobals // Cobra boilerplate
var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and custom templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

//nolint:gochecknoglobals // Cobra boilerplate
var templateUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Select a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateUse,
}

//nolint:gochecknoglobals // Cobra boilerplate
var templateSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a custom template based on a built-in one",
	Long: `Save a custom template based on a built-in one.

Example:
  resume-builder template save "Blue Modern" --base modern --accent "#1d4ed8"`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateSave,
}

//nolint:gochecknoglobals // Cobra boilerplate
var templateDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a custom template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDelete,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateUseCmd)
	templateCmd.AddCommand(templateSaveCmd)
	templateCmd.AddCommand(templateDeleteCmd)

	templateSaveCmd.Flags().StringVar(&templateBase, "base", prefs.DefaultTemplateID, "Built-in template to start from")
	templateSaveCmd.Flags().StringVar(&templateAccent, "accent", "", "Accent colour as #rrggbb")
	templateSaveCmd.Flags().StringVar(&templateFont, "font", "", "Font family")
}

func runTheme(cmd *cobra.Command, args []string) (err error) {
	err = withSession(func(ctx context.Context, s *session) (err error) {
		theme := s.ws.Prefs.Theme(ctx)
		switch {
		case len(args) == 0:
		case args[0] == "toggle":
			theme, err = s.ws.Prefs.ToggleTheme(ctx)
		default:
			theme = prefs.Theme(args[0])
			err = s.ws.Prefs.SetTheme(ctx, theme)
		}
		if err != nil {
			return err
		}

		fmt.Print("Theme: ")
		_, _ = keyColor.Println(theme)
		return err
	})
	return err
}

func runTemplateList(cmd *cobra.Command, args []string) (err error) {
	err = withSession(func(ctx context.Context, s *session) (err error) {
		selected := s.ws.Prefs.TemplateID(ctx)
		for _, tpl := range s.ws.Prefs.Templates(ctx) {
			marker := " "
			if tpl.ID == selected {
				marker = okColor.Sprint("*")
			}
			fmt.Printf("%s ", marker)
			_, _ = keyColor.Printf("%-38s", tpl.ID)
			fmt.Printf(" %s", tpl.Name)
			if tpl.Base != "" {
				_, _ = dimColor.Printf(" (based on %s)", tpl.Base)
			}
			fmt.Println()
		}
		return err
	})
	return err
}

func runTemplateUse(cmd *cobra.Command, args []string) (err error) {
	err = withSession(func(ctx context.Context, s *session) (err error) {
		err = s.ws.Prefs.SetTemplateID(ctx, args[0])
		if err != nil {
			return err
		}
		_, _ = okColor.Printf("Using template %s\n", args[0])
		return err
	})
	return err
}

func runTemplateSave(cmd *cobra.Command, args []string) (err error) {
	err = withSession(func(ctx context.Context, s *session) (err error) {
		var saved prefs.Template
		saved, err = s.ws.Prefs.SaveCustomTemplate(ctx, prefs.Template{
			Name:   args[0],
			Base:   templateBase,
			Accent: templateAccent,
			Font:   templateFont,
		})
		if err != nil {
			return err
		}

		_, _ = okColor.Print("Saved ")
		_, _ = keyColor.Println(saved.ID)
		return err
	})
	return err
}

func runTemplateDelete(cmd *cobra.Command, args []string) (err error) {
	err = withSession(func(ctx context.Context, s *session) (err error) {
		var deleted bool
		deleted, err = s.ws.Prefs.DeleteCustomTemplate(ctx, args[0])
		if err != nil {
			return err
		}
		if !deleted {
			err = errors.Errorf("no custom template %q", args[0])
			return err
		}
		_, _ = okColor.Println("Deleted.")
		return err
	})
	return err
}
