package cricket

import "errors"

var (
	ErrNotEnoughPlayers   = errors.New("both teams need at least 2 players")
	ErrGameAlreadyStarted = errors.New("match has already started")
	ErrNoTossWinner       = errors.New("no toss winner selected")
	ErrInvalidTossChoice  = errors.New("toss choice must be bat or bowl")
	ErrNoTossesRemaining  = errors.New("no more tosses remaining")
	ErrInvalidBall        = errors.New("invalid ball event")
	ErrOverMissing        = errors.New("current over is missing from the over log")
	ErrTeamIndex          = errors.New("team index must be 0 or 1")
	ErrPlayerNotFound     = errors.New("player not found in roster")
	ErrSameBatsman        = errors.New("striker and non-striker must be different players")
	ErrEmptyName          = errors.New("name must not be empty")
	ErrInvalidRole        = errors.New("unknown player role")
)
