package cricket

import "slices"

// BallsPerOver is the number of legal deliveries that complete an over.
const BallsPerOver = 6

// NewOver returns an empty, open over.
func NewOver(number int) Over {
	return Over{Number: number, Balls: []BallEvent{}}
}

// LegalDeliveries counts the balls in the over that are not wides or no-balls.
func LegalDeliveries(o Over) int {
	n := 0
	for _, b := range o.Balls {
		if b.IsLegal() {
			n++
		}
	}
	return n
}

// OverSummary is the per-over line of the scorecard.
type OverSummary struct {
	Number   int  `json:"number"`
	Runs     int  `json:"runs"`
	Wickets  int  `json:"wickets"`
	Complete bool `json:"complete"`
}

// Status is "Complete" or "In progress".
func (o OverSummary) Status() string {
	if o.Complete {
		return "Complete"
	}
	return "In progress"
}

// Summarize totals the runs and wickets of an over.
func Summarize(o Over) OverSummary {
	sum := OverSummary{Number: o.Number, Complete: o.Complete}
	for _, b := range o.Balls {
		sum.Runs += b.TotalRuns()
		if b.IsWicket {
			sum.Wickets++
		}
	}
	return sum
}

// OverSummaries summarizes every over of the current innings.
func OverSummaries(state MatchState) []OverSummary {
	out := make([]OverSummary, 0, len(state.Overs))
	for _, o := range state.Overs {
		out = append(out, Summarize(o))
	}
	return out
}

// CurrentOver returns the over in progress. If the pointer does not match any over
// an empty over with that number is returned.
func CurrentOver(state MatchState) Over {
	if i := overIndex(state.Overs, state.CurrentOver); i >= 0 {
		o := state.Overs[i]
		o.Balls = slices.Clone(o.Balls)
		return o
	}
	return NewOver(state.CurrentOver)
}

func overIndex(overs []Over, number int) int {
	for i, o := range overs {
		if o.Number == number {
			return i
		}
	}
	return -1
}

// BallAt returns the seq-th ball (1-based) of an over in the current innings.
func BallAt(state MatchState, overNumber, seq int) (BallEvent, bool) {
	i := overIndex(state.Overs, overNumber)
	if i < 0 || seq < 1 || seq > len(state.Overs[i].Balls) {
		return BallEvent{}, false
	}
	return state.Overs[i].Balls[seq-1], true
}
