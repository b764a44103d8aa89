package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// BindingsOptions holds options for the bindings command.
type BindingsOptions struct {
	Mode    string
	Keymaps []string
}

func newBindingsCommand(a *app) *cobra.Command {
	opts := &BindingsOptions{}

	cmd := &cobra.Command{
		Use:   "bindings",
		Short: "List the active key bindings",
		Long:  "List the default bindings plus any configured keymap files, sorted by mode then id.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBindings(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "Only list bindings of this mode")
	cmd.Flags().StringArrayVarP(&opts.Keymaps, "keymap", "k", nil, "Extra keymap file(s) to load")

	return cmd
}

func listBindings(cmd *cobra.Command, a *app, opts *BindingsOptions) error {
	s, err := a.newSession("", opts.Keymaps)
	if err != nil {
		return err
	}
	defer s.Close()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tKEYS\tACTION\tID\tDESCRIPTION")
	for _, b := range s.Registry().Bindings(opts.Mode) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			b.Mode, strings.Join(b.Sequence.Tokens(), " "), b.ActionID, b.ID, b.Description)
	}
	return tw.Flush()
}
