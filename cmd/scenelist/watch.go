package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scenelist/internal/editor"
	"scenelist/internal/log"
	"scenelist/internal/source"
	"scenelist/pkg/types"

	"github.com/spf13/cobra"
)

// newWatchCmd creates the watch command
func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Report scenes appearing and disappearing on disk",
		Long: `Watch the project for scene files being created, deleted or renamed and
print how the available pool changes. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			w, err := source.NewWatcher(s.scanner, time.Duration(a.cfg.Watch.DebounceMs)*time.Millisecond)
			if err != nil {
				return err
			}
			defer w.Close()
			if err := w.Start(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, infoText(fmt.Sprintf("Watching %s (Ctrl+C to stop)", s.scanner.Root())))
			return watchLoop(ctx, s.editor, w.Changes(), out)
		},
	}
}

// watchLoop refreshes ed on every change and prints pool differences until
// ctx is done or changes is closed.
func watchLoop(ctx context.Context, ed *editor.Editor, changes <-chan source.Change, out io.Writer) error {
	before := ed.Pool()
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-changes:
			if !ok {
				return nil
			}
			if err := ed.Refresh(); err != nil {
				log.LogError(err, "Refresh failed")
				continue
			}

			after := ed.Pool()
			added, removed := diffItems(before, after)
			log.LogWithFields(
				log.F("paths", len(c.Paths)),
				log.F("added", len(added)),
				log.F("removed", len(removed)),
			).Debug("Scene files changed")

			for _, it := range added {
				fmt.Fprintln(out, successText("+ "+it.Label()))
			}
			for _, it := range removed {
				fmt.Fprintln(out, warningText("- "+it.Label()))
			}
			printMissing(out, ed.Missing())
			before = after
		}
	}
}

// diffItems returns the items only in after and the items only in before.
func diffItems(before, after []types.Item) (added, removed []types.Item) {
	old := make(map[types.Item]struct{}, len(before))
	for _, it := range before {
		old[it] = struct{}{}
	}
	cur := make(map[types.Item]struct{}, len(after))
	for _, it := range after {
		cur[it] = struct{}{}
		if _, ok := old[it]; !ok {
			added = append(added, it)
		}
	}
	for _, it := range before {
		if _, ok := cur[it]; !ok {
			removed = append(removed, it)
		}
	}
	return added, removed
}
