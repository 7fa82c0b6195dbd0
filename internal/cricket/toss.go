package cricket

import (
	"math/rand/v2"
)

// DefaultTossAttempts is how many coin flips a match gets before the winner has
// to be picked by hand.
const DefaultTossAttempts = 3

// Coin decides a toss winner.
type Coin interface {
	Flip() int
}

// RandomCoin is a fair coin.
type RandomCoin struct{}

// Flip returns 0 or 1 with equal probability.
func (RandomCoin) Flip() int {
	return rand.IntN(2)
}

// ResolveToss returns the index of the team that bats first.
func ResolveToss(toss TossResult) int {
	if toss.Choice == ChoiceBat {
		return toss.Winner
	}
	return OtherTeam(toss.Winner)
}

// FlipCoin consumes one toss attempt and records the winner it lands on.
func FlipCoin(state MatchState, coin Coin) (MatchState, error) {
	if state.GameStarted {
		return state, ErrGameAlreadyStarted
	}
	if state.TossDraw.Remaining <= 0 {
		return state, ErrNoTossesRemaining
	}
	winner := coin.Flip()
	if winner != 0 && winner != 1 {
		return state, ErrTeamIndex
	}
	next := state.Clone()
	next.TossDraw.Winner = &winner
	next.TossDraw.Remaining--
	return next, nil
}

// SelectTossWinner picks the toss winner by hand. It does not use an attempt.
func SelectTossWinner(state MatchState, winner int) (MatchState, error) {
	if state.GameStarted {
		return state, ErrGameAlreadyStarted
	}
	if winner != 0 && winner != 1 {
		return state, ErrTeamIndex
	}
	next := state.Clone()
	next.TossDraw.Winner = &winner
	return next, nil
}

// ConfirmToss completes the toss with the drawn winner and the given choice.
func ConfirmToss(state MatchState, choice TossChoice) (MatchState, error) {
	if state.TossDraw.Winner == nil {
		return state, ErrNoTossWinner
	}
	return CompleteToss(state, TossResult{Winner: *state.TossDraw.Winner, Choice: choice})
}

// CompleteToss starts the match: the toss is stored and the batting side is
// fixed from it. Rosters must satisfy CanStartGame.
func CompleteToss(state MatchState, toss TossResult) (MatchState, error) {
	if state.GameStarted {
		return state, ErrGameAlreadyStarted
	}
	if !CanStartGame(state) {
		return state, ErrNotEnoughPlayers
	}
	if toss.Winner != 0 && toss.Winner != 1 {
		return state, ErrNoTossWinner
	}
	if toss.Choice != ChoiceBat && toss.Choice != ChoiceBowl {
		return state, ErrInvalidTossChoice
	}

	toss.Completed = true
	next := state.Clone()
	next.Toss = &toss
	next.TossDraw.Winner = &toss.Winner
	next.CurrentInningsTeamIndex = ResolveToss(toss)
	next.GameStarted = true
	return next, nil
}
