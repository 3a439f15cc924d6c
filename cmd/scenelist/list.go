package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"scenelist/internal/editor"
	"scenelist/pkg/types"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the scenes included in the build, in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			printList(cmd.OutOrStdout(), s.editor)
			return nil
		},
	}
}

func newAvailableCmd(a *app) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "available",
		Short: "Show scenes that can be added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			pool := s.editor.Pool()
			if len(pool) == 0 {
				fmt.Fprintln(out, infoText("No scenes available."))
				return nil
			}
			for i, it := range pool {
				if !long {
					fmt.Fprintf(out, "%3d  %s\n", i, it.Label())
					continue
				}
				fmt.Fprintf(out, "%3d  %-50s %s\n", i, it.Label(), fileDetails(s.scanner.Root(), it))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "show file size and modification time")
	return cmd
}

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rescan the project and report what changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			ed := s.editor
			fmt.Fprintf(out, "%d included, %d available\n", ed.Len(), len(ed.Pool()))
			printMissing(out, ed.Missing())
			return nil
		},
	}
}

func printList(out io.Writer, ed *editor.Editor) {
	items := ed.Items()
	if len(items) == 0 {
		fmt.Fprintln(out, infoText("No scenes included."))
		return
	}
	missing := make(map[types.Item]bool)
	for _, it := range ed.Missing() {
		missing[it] = true
	}
	for i, it := range items {
		line := fmt.Sprintf("%3d  %s", i, it.Label())
		if missing[it] {
			line += " " + warningText("(missing)")
		}
		fmt.Fprintln(out, line)
	}
}

func printMissing(out io.Writer, missing []types.Item) {
	for _, it := range missing {
		fmt.Fprintln(out, warningText("Included scene not found on disk: "+it.Path()))
	}
}

// fileDetails renders size and age of a scene file, or "?" if it cannot be read.
func fileDetails(root string, it types.Item) string {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(it.Path())))
	if err != nil {
		return "?"
	}
	return fmt.Sprintf("%8s  %s", humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime()))
}
