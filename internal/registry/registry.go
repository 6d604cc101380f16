// Package registry maps mode IDs to their description and factory.
// Modes register themselves in init() so the CLI and the terminal front end
// can list and start them without importing each one by name.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/blobfall/internal/core"
)

var (
	ErrUnknownMode   = errors.New("registry: unknown mode")
	ErrDuplicateMode = errors.New("registry: mode already registered")
	ErrInvalidMode   = errors.New("registry: invalid mode")
)

// Game is what the front end drives. Implementations hold pure tick-based
// logic; input mapping, pacing and drawing live in the platform layer.
type Game interface {
	// ID returns the mode identifier used on the command line and in the
	// score store (e.g. "blobfall_wide").
	ID() string

	Title() string

	// Reset starts a new game. Called before the first Step and on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// ModeInfo describes a registered mode.
type ModeInfo struct {
	ID     string
	Title  string
	Blurb  string   // One line for menus and the list command
	Order  int      // Menu position, lower first
	Cols   int      // Well width under the default config
	Shapes []string // Shape families dealt, e.g. "tetromino"
}

// ShapeList joins the shape families for display.
func (m ModeInfo) ShapeList() string {
	return strings.Join(m.Shapes, ", ")
}

// Factory creates a fresh, un-reset game.
type Factory func() Game

type entry struct {
	info    ModeInfo
	factory Factory
}

var (
	modes = make(map[string]entry)
	mu    sync.RWMutex
)

// Register adds a mode. Empty IDs and titles are rejected, and so is an ID
// that is already taken.
func Register(info ModeInfo, f Factory) error {
	if info.ID == "" || info.Title == "" || f == nil {
		return fmt.Errorf("%w: %q", ErrInvalidMode, info.ID)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[info.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateMode, info.ID)
	}
	info.Shapes = slices.Clone(info.Shapes)
	modes[info.ID] = entry{info: info, factory: f}
	return nil
}

// MustRegister is Register for init functions.
func MustRegister(info ModeInfo, f Factory) {
	if err := Register(info, f); err != nil {
		panic(err)
	}
}

// List returns every registered mode in menu order, ties broken by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for _, e := range modes {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b ModeInfo) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Lookup returns the description of the mode registered under id.
func Lookup(id string) (ModeInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[id]
	return e.info, ok
}

// Create instantiates the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := modes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
