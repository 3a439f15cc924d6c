package main

import (
	"io"
	"time"

	"scenelist/internal/config"
	"scenelist/internal/log"
	"scenelist/internal/source"
	"scenelist/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit the scene list interactively",
		Long: `Open the interactive editor. Logs go to --log-file only, since the
terminal belongs to the editor while it runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.configureLogging(io.Discard)

			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			opts := []tui.Option{tui.WithTheme(config.GetTheme(a.cfg.UI.Theme))}
			if watch {
				w, err := source.NewWatcher(s.scanner, time.Duration(a.cfg.Watch.DebounceMs)*time.Millisecond)
				if err != nil {
					return err
				}
				defer w.Close()
				if err := w.Start(); err != nil {
					return err
				}
				opts = append(opts, tui.WithChanges(w.Changes()))
			}

			log.LogWithFields(log.F("session", s.editor.SessionID())).Info("Starting interactive editor")
			return tui.Run(s.editor, opts...)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", true, "refresh when scene files change on disk")
	return cmd
}
