package cmd

import (
	"context"

	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Add or remove entries in a section",
}

//nolint:gochecknoglobals // Cobra boilerplate
var itemAddCmd = &cobra.Command{
	Use:   "add <section>",
	Short: "Append a blank entry to a section and print its id",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemAdd,
}

//nolint:gochecknoglobals // Cobra boilerplate
var itemRemoveCmd = &cobra.Command{
	Use:   "remove <section> <id>",
	Short: "Delete an entry from a section",
	Args:  cobra.ExactArgs(2),
	RunE:  runItemRemove,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(itemCmd)
	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemRemoveCmd)
}

func runItemAdd(cmd *cobra.Command, args []string) (err error) {
	key := args[0]
	section, ok := resume.Lookup(key)
	if !ok || !section.HasItems() {
		err = errors.Errorf("section %q has no entries to add", key)
		return err
	}

	err = withSession(func(ctx context.Context, s *session) (err error) {
		var item resume.Item
		s.ws.Store.Update(func(draft *resume.Data) {
			item = resume.AddItem(draft, key)
		})

		_, _ = okColor.Print("Added ")
		_, _ = keyColor.Println(item.ItemID())
		if !s.ws.Sections.Has(key) {
			_, _ = warnColor.Printf("Section %s is hidden; run 'resume-builder sections toggle %s' to show it.\n", key, key)
		}
		return err
	})
	return err
}

func runItemRemove(cmd *cobra.Command, args []string) (err error) {
	key, id := args[0], args[1]

	err = withSession(func(ctx context.Context, s *session) (err error) {
		var removed bool
		s.ws.Store.Update(func(draft *resume.Data) {
			removed = resume.RemoveItem(draft, key, id)
		})
		if !removed {
			err = errors.Errorf("no entry %q in section %q", id, key)
			return err
		}

		_, _ = okColor.Println("Removed.")
		return err
	})
	return err
}
