package main

import (
	"fmt"

	"scenelist/internal/editor"

	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <scene|position>...",
		Short: "Add available scenes to the end of the list",
		Long: `Add scenes from the available pool to the end of the list, in the order
given. A scene is named by its path, its name, or its position as shown by
'scenelist available'.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()
			ed := s.editor

			resolved, err := targets(args, ed.Pool())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range resolved {
				index := r.index
				if r.item != "" {
					index = ed.PoolIndexOf(r.item)
				}
				changed, err := ed.Add(index)
				if err != nil {
					return err
				}
				if !changed {
					fmt.Fprintln(out, warningText(fmt.Sprintf("Nothing to add for %q", r.arg)))
					continue
				}
				fmt.Fprintln(out, successText("Added "+r.item.Label()))
			}
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <scene|position>...",
		Aliases: []string{"rm"},
		Short:   "Remove scenes from the list",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()
			ed := s.editor

			resolved, err := targets(args, ed.Items())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range resolved {
				index := r.index
				if r.item != "" {
					index = ed.IndexOf(r.item)
				}
				changed, err := ed.Remove(index)
				if err != nil {
					return err
				}
				if !changed {
					fmt.Fprintln(out, warningText(fmt.Sprintf("Nothing to remove for %q", r.arg)))
					continue
				}
				fmt.Fprintln(out, successText("Removed "+r.item.Label()))
			}
			return nil
		},
	}
}

// newMoveCmd builds one of the reorder commands around an editor operation.
func newMoveCmd(a *app, use, short string, move func(*editor.Editor, int) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <scene|position>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			index, err := target(args[0], s.editor.Items())
			if err != nil {
				return err
			}
			changed, err := move(s.editor, index)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !changed {
				fmt.Fprintln(out, warningText(fmt.Sprintf("Cannot move %q %s", args[0], use)))
				return nil
			}
			printList(out, s.editor)
			return nil
		},
	}
}
