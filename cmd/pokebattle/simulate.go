package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/samdwyer/pokebattle/internal/gamedata"
	"github.com/samdwyer/pokebattle/internal/random"
	"github.com/samdwyer/pokebattle/internal/sim"
	"github.com/samdwyer/pokebattle/internal/storage"
)

var (
	simBattles  int
	simParallel int
	simPlayer   string
	simOpponent string
	simMaxTurns int
	simRecord   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless battles and report win rates",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simBattles, "battles", 100, "Number of battles")
	simulateCmd.Flags().IntVar(&simParallel, "parallel", runtime.NumCPU(), "Battles run at once")
	simulateCmd.Flags().StringVar(&simPlayer, "player", "", "Player Pokémon (default: random per battle)")
	simulateCmd.Flags().StringVar(&simOpponent, "opponent", "", "Opponent Pokémon (default: random per battle)")
	simulateCmd.Flags().IntVar(&simMaxTurns, "max-turns", sim.DefaultMaxTurns, "Turn limit before a battle is a draw")
	simulateCmd.Flags().BoolVar(&simRecord, "record", false, "Save results to the history database")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	catalog, err := gamedata.LoadMoveCatalog()
	if err != nil {
		return err
	}
	roster, err := gamedata.LoadRoster()
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			return err
		}
	}

	opts := sim.Options{
		Battles:  simBattles,
		Parallel: simParallel,
		Seed:     seed,
		Level:    cfg.Level,
		MaxTurns: simMaxTurns,
		Logger:   logger,
	}
	if opts.Player, err = lookup(roster, simPlayer); err != nil {
		return err
	}
	if opts.Opponent, err = lookup(roster, simOpponent); err != nil {
		return err
	}

	if simRecord {
		store, err := storage.Open(ctx, cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Recorder = store
	}

	summary, err := sim.NewRunner(catalog, roster).Run(ctx, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Simulated %d battles (seed %d)\n", summary.Battles, seed)
	fmt.Fprintf(out, "  player wins:   %4d  (%5.1f%%)\n", summary.PlayerWins, 100*summary.PlayerWinRate())
	fmt.Fprintf(out, "  opponent wins: %4d  (%5.1f%%)\n", summary.OpponentWins, 100*summary.OpponentWinRate())
	fmt.Fprintf(out, "  draws:         %4d\n", summary.Draws)
	return nil
}

// lookup resolves a roster name; empty means random.
func lookup(roster *gamedata.Roster, name string) (*gamedata.PokemonDef, error) {
	if name == "" {
		return nil, nil
	}
	def := roster.GetByName(name)
	if def == nil {
		return nil, fmt.Errorf("unknown pokemon %q", name)
	}
	return def, nil
}
