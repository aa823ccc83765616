package domain

import "errors"

// Lookup errors
var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrNoActiveGame       = errors.New("no active game")
	ErrGamePlayerNotFound = errors.New("game player not found")
	ErrSlotNotFound       = errors.New("bracket slot not found")
)

// Bracket errors
var (
	ErrDivisionSize     = errors.New("exactly 4 teams required for each division")
	ErrMalformedBracket = errors.New("bracket structure is malformed")
	ErrSlotsUnassigned  = errors.New("both teams must be assigned before creating a game")
)
