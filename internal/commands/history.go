package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plugsmith/plugsmith/internal/config"
	"github.com/plugsmith/plugsmith/internal/storage"
	"github.com/plugsmith/plugsmith/internal/terminal"
)

var historyFlags struct {
	limit int
	clear bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent deploy attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store := storage.NewHistoryStore(cfg.Root)

		if historyFlags.clear {
			if err := store.Clear(); err != nil {
				return err
			}
			terminal.Success("history cleared")
			return nil
		}

		entries, err := store.Recent(historyFlags.limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			terminal.Info("no deploys recorded yet")
			return nil
		}

		for _, e := range entries {
			when := e.CreatedAt.Format("2006-01-02 15:04")
			line := fmt.Sprintf("%s  %s (%s)", when, e.Name, e.Format)
			if e.Success {
				terminal.Success(line + "  → " + e.Path)
			} else {
				terminal.Error(fmt.Sprintf("%s  rejected with %d error(s)", line, e.Errors))
			}
		}
		return nil
	},
}

func init() {
	f := historyCmd.Flags()
	f.IntVar(&historyFlags.limit, "limit", 20, "number of entries to show")
	f.BoolVar(&historyFlags.clear, "clear", false, "clear the history")
}
