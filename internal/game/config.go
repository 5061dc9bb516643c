package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/samdwyer/pokebattle/internal/storage"
)

// Recorder stores finished battles. *storage.Store satisfies it.
type Recorder interface {
	Save(ctx context.Context, b storage.Battle) error
}

// Config holds session options.
type Config struct {
	// Seed for random number generation. Used for reproducible battles and
	// opponent picks. A seed of 0 means a random seed will be generated.
	Seed int64

	// Level both combatants battle at.
	Level int

	// OpponentDelay is the pause before the opponent acts.
	OpponentDelay time.Duration

	// Player is a roster name to always play as; empty picks at random.
	Player string

	Logger   *zap.Logger
	Recorder Recorder // optional
}
