package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samdwyer/pokebattle/internal/game"
	"github.com/samdwyer/pokebattle/internal/gamedata"
	"github.com/samdwyer/pokebattle/internal/storage"
	"github.com/samdwyer/pokebattle/internal/ui"
)

var playAs string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Battle a random opponent",
	Long: `Start an interactive battle.

Keys:
  1-4  use a move
  p    pass when every move is out of PP
  n    start a new battle
  q    quit`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playAs, "as", "", "Roster Pokémon to play as (default: random)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	catalog, err := gamedata.LoadMoveCatalog()
	if err != nil {
		return err
	}
	roster, err := gamedata.LoadRoster()
	if err != nil {
		return err
	}

	gcfg := game.Config{
		Seed:          cfg.Seed,
		Level:         cfg.Level,
		OpponentDelay: cfg.OpponentDelay.Duration,
		Player:        playAs,
		Logger:        logger,
	}

	store, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		// History is optional while playing.
		logger.Warn("battle history disabled", zap.Error(err))
	} else {
		defer store.Close()
		gcfg.Recorder = store
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	g, err := game.New(gcfg, screen, catalog, roster)
	if err != nil {
		screen.Close()
		return err
	}
	defer g.Close()

	return g.Run(ctx)
}
