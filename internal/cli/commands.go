// Subcommand forms of the journal operations. Each one shares its handler
// with the matching root flag.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add today's entry",
		Long: `Add creates the entry for today's date. Only one entry per day is kept;
adding a second one for the same day is rejected.

Example:
  journal add "Met with team"
  journal add Met with team`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandler(cmd, func(h *handler) error {
				return h.add(strings.Join(args, " "))
			})
		},
	}
}

func (a *app) newViewCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "view <date>",
		Short: "View the entry for a date",
		Long: `View prints the entry for a date in YYYY-MM-DD form. Long entries are
shortened unless --full is given.

Example:
  journal view 2023-12-10
  journal view 2023-12-10 --full`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandler(cmd, func(h *handler) error {
				return h.view(args[0], full)
			})
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "print the whole entry")
	return cmd
}

func (a *app) newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <date> <text>",
		Short: "Replace the content of an entry",
		Long: `Edit replaces the content of the entry for a date. The date itself
never changes.

Example:
  journal edit 2023-12-10 "Updated notes"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandler(cmd, func(h *handler) error {
				return h.edit(args[0], strings.Join(args[1:], " "))
			})
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <date>",
		Short: "Delete the entry for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandler(cmd, func(h *handler) error {
				return h.remove(args[0])
			})
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all entries by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandler(cmd, func(h *handler) error {
				return h.list()
			})
		},
	}
}
