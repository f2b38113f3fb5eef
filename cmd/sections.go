package cmd

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/nikogura/resume-builder/pkg/sections"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var toggleOn bool

//nolint:gochecknoglobals // Cobra boilerplate
var toggleOff bool

//nolint:gochecknoglobals // Cobra boilerplate
var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Show, hide and reorder resume sections",
	Long: `Manage which sections appear on the resume and in what order.

The personal header is always shown and is not part of the order. Custom sections
are addressed as custom:<id>.`,
}

//nolint:gochecknoglobals // Cobra boilerplate
var sectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active sections in order, then the inactive ones",
	Args:  cobra.NoArgs,
	RunE:  runSectionsList,
}

//nolint:gochecknoglobals // Cobra boilerplate
var sectionsToggleCmd = &cobra.Command{
	Use:   "toggle <key>",
	Short: "Show or hide a section",
	Long: `Show or hide a section. Without --on or --off the current state is flipped.
A section that is shown again returns to the position it last held. Showing an
empty section adds one blank entry to it.`,
	Args: cobra.ExactArgs(1),
	RunE: runSectionsToggle,
}

//nolint:gochecknoglobals // Cobra boilerplate
var sectionsMoveCmd = &cobra.Command{
	Use:   "move <key> <position>",
	Short: "Move an active section to a 1-based position",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionsMove,
}

//nolint:gochecknoglobals // Cobra boilerplate
var sectionsAddCustomCmd = &cobra.Command{
	Use:   "add-custom [title]",
	Short: "Add a custom section and show it last",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSectionsAddCustom,
}

//nolint:gochecknoglobals // Cobra boilerplate
var sectionsRemoveCustomCmd = &cobra.Command{
	Use:   "remove-custom <id>",
	Short: "Delete a custom section",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionsRemoveCustom,
}

//nolint:gochecknoglobals // Cobra boilerplate
var sectionsRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Put active sections back into their default order",
	Args:  cobra.NoArgs,
	RunE:  runSectionsRestore,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsCmd.AddCommand(sectionsListCmd)
	sectionsCmd.AddCommand(sectionsToggleCmd)
	sectionsCmd.AddCommand(sectionsMoveCmd)
	sectionsCmd.AddCommand(sectionsAddCustomCmd)
	sectionsCmd.AddCommand(sectionsRemoveCustomCmd)
	sectionsCmd.AddCommand(sectionsRestoreCmd)

	sectionsToggleCmd.Flags().BoolVar(&toggleOn, "on", false, "Show the section")
	sectionsToggleCmd.Flags().BoolVar(&toggleOff, "off", false, "Hide the section")
	sectionsToggleCmd.MarkFlagsMutuallyExclusive("on", "off")
}

func runSectionsList(cmd *cobra.Command, args []string) (err error) {
	err = withSession(func(ctx context.Context, s *session) (err error) {
		printSections(s)
		return err
	})
	return err
}

func runSectionsToggle(cmd *cobra.Command, args []string) (err error) {
	key := args[0]
	err = withSession(func(ctx context.Context, s *session) (err error) {
		if !sections.Known(key, s.ws.Document()) {
			err = errors.Errorf("unknown section %q", key)
			return err
		}

		enabled := !s.ws.Sections.Has(key)
		switch {
		case toggleOn:
			enabled = true
		case toggleOff:
			enabled = false
		}

		s.ws.Sections.Toggle(key, enabled)
		printSections(s)
		return err
	})
	return err
}

func runSectionsMove(cmd *cobra.Command, args []string) (err error) {
	key := args[0]

	var position int
	position, err = strconv.Atoi(args[1])
	if err != nil || position < 1 {
		err = errors.Errorf("position must be a number starting at 1, got %q", args[1])
		return err
	}

	err = withSession(func(ctx context.Context, s *session) (err error) {
		var next []string
		next, err = moveKey(s.ws.Sections.Order(), key, position-1)
		if err != nil {
			return err
		}

		s.ws.Sections.Reorder(next)
		printSections(s)
		return err
	})
	return err
}

func runSectionsAddCustom(cmd *cobra.Command, args []string) (err error) {
	title := ""
	if len(args) > 0 {
		title = args[0]
	}

	err = withSession(func(ctx context.Context, s *session) (err error) {
		id := s.ws.Sections.AddCustomSection(title)
		_, _ = okColor.Print("Added ")
		_, _ = keyColor.Println(resume.CustomKey(id))
		return err
	})
	return err
}

func runSectionsRemoveCustom(cmd *cobra.Command, args []string) (err error) {
	id := args[0]
	if parsed, ok := resume.ParseCustomKey(id); ok {
		id = parsed
	}

	err = withSession(func(ctx context.Context, s *session) (err error) {
		if s.ws.Document().FindCustomSection(id) < 0 {
			err = errors.Errorf("no custom section with id %q", id)
			return err
		}

		s.ws.Sections.RemoveCustomSection(id)
		_, _ = okColor.Println("Removed.")
		return err
	})
	return err
}

func runSectionsRestore(cmd *cobra.Command, args []string) (err error) {
	err = withSession(func(ctx context.Context, s *session) (err error) {
		if !s.ws.Panel.Restore() {
			_, _ = dimColor.Println("Sections are already in default order.")
			return err
		}
		printSections(s)
		return err
	})
	return err
}

// moveKey returns order with key moved to index, clamped to the end.
func moveKey(order []string, key string, index int) (next []string, err error) {
	from := slices.Index(order, key)
	if from < 0 {
		err = errors.Errorf("section %q is not active", key)
		return next, err
	}

	next = slices.Delete(slices.Clone(order), from, from+1)
	index = min(index, len(next))
	next = slices.Insert(next, index, key)
	return next, err
}

// sectionTitle returns the heading for key as shown in the editor.
func sectionTitle(doc *resume.Data, key string) (title string) {
	if section, ok := resume.Lookup(key); ok {
		title = section.Title
		return title
	}
	if id, ok := resume.ParseCustomKey(key); ok {
		if idx := doc.FindCustomSection(id); idx >= 0 {
			title = doc.CustomSections[idx].Title
		}
	}
	return title
}

func printSections(s *session) {
	doc := s.ws.Document()
	order := s.ws.Sections.Order()

	_, _ = titleColor.Println("Active")
	if len(order) == 0 {
		_, _ = dimColor.Println("  (none)")
	}
	for i, key := range order {
		fmt.Printf("  %2d. ", i+1)
		_, _ = keyColor.Printf("%-16s", key)
		fmt.Printf(" %s\n", sectionTitle(doc, key))
	}

	inactive := make([]string, 0)
	for _, key := range resume.StandardKeys() {
		if !slices.Contains(order, key) {
			inactive = append(inactive, key)
		}
	}
	for _, custom := range doc.CustomSections {
		if key := resume.CustomKey(custom.ID); !slices.Contains(order, key) {
			inactive = append(inactive, key)
		}
	}
	if len(inactive) == 0 {
		return
	}

	_, _ = titleColor.Println("Inactive")
	for _, key := range inactive {
		_, _ = dimColor.Printf("      %-16s %s\n", key, strings.TrimSpace(sectionTitle(doc, key)))
	}
}
