package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samdwyer/pokebattle/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent battles and win records",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := storage.Open(ctx, cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		battles, err := store.Recent(ctx, historyLimit)
		if err != nil {
			return err
		}
		records, err := store.Records(ctx)
		if err != nil {
			return err
		}
		printHistory(cmd.OutOrStdout(), battles, records)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of recent battles to show")
}

func printHistory(w io.Writer, battles []storage.Battle, records []storage.Record) {
	if len(battles) == 0 {
		fmt.Fprintln(w, "No battles recorded yet.")
		return
	}

	fmt.Fprintln(w, "Recent battles:")
	for _, b := range battles {
		result := "draw"
		switch b.Winner {
		case "player":
			result = b.Player + " won"
		case "opponent":
			result = b.Opponent + " won"
		}
		fmt.Fprintf(w, "  %s  %-10s vs %-10s  %-16s %3d turns\n",
			b.FinishedAt.Local().Format("2006-01-02 15:04"), b.Player, b.Opponent, result, b.Turns)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Records:")
	for _, r := range records {
		fmt.Fprintf(w, "  %-10s %3d W %3d L\n", r.Name, r.Wins, r.Losses)
	}
}
