package game

import (
	"errors"
	"strings"

	"github.com/beka-birhanu/mindful-labyrinth/game/maze"
)

// Direction is one of the four moves a player can make.
type Direction int

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

var (
	ErrInvalidDirection = errors.New("invalid direction")

	deltas = map[Direction]maze.Position{
		Up:    {X: 0, Y: -1},
		Down:  {X: 0, Y: 1},
		Left:  {X: -1, Y: 0},
		Right: {X: 1, Y: 0},
	}

	// directionNames maps the names and keys a client may send to a direction.
	directionNames = map[string]Direction{
		"up": Up, "w": Up, "arrowup": Up,
		"down": Down, "s": Down, "arrowdown": Down,
		"left": Left, "a": Left, "arrowleft": Left,
		"right": Right, "d": Right, "arrowright": Right,
	}
)

// ParseDirection maps a direction name, a WASD key or an arrow key name
// (case-insensitive) to a Direction.
func ParseDirection(s string) (Direction, error) {
	d, ok := directionNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, ErrInvalidDirection
	}
	return d, nil
}

// Valid reports whether d is one of Up, Down, Left or Right.
func (d Direction) Valid() bool {
	_, ok := deltas[d]
	return ok
}

// String returns the lower case name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "invalid"
	}
}
