package cricket

import (
	"fmt"
	"strconv"
)

// IsLegal reports whether the ball counts toward the six deliveries of an over.
// Wides and no-balls are re-bowled; byes and leg byes are not.
func (b BallEvent) IsLegal() bool {
	return !(b.IsExtra && (b.ExtraType == ExtraWide || b.ExtraType == ExtraNoBall))
}

// TotalRuns is what the ball adds to the batting total.
func (b BallEvent) TotalRuns() int {
	return b.Runs + b.ExtraRuns
}

// CreditsBowler reports whether a wicket on this ball goes to the bowler's tally.
func (b BallEvent) CreditsBowler() bool {
	return b.IsWicket && b.WicketType != WicketRunOut
}

// Validate rejects balls whose fields contradict each other.
func (b BallEvent) Validate() error {
	if b.Runs < 0 {
		return fmt.Errorf("%w: runs must not be negative", ErrInvalidBall)
	}
	if b.ExtraRuns < 0 {
		return fmt.Errorf("%w: extra runs must not be negative", ErrInvalidBall)
	}
	if b.WicketType != "" {
		if !b.IsWicket {
			return fmt.Errorf("%w: wicket type without a wicket", ErrInvalidBall)
		}
		if !validWicketType(b.WicketType) {
			return fmt.Errorf("%w: unknown wicket type %q", ErrInvalidBall, b.WicketType)
		}
	}
	if b.ExtraType != "" {
		if !b.IsExtra {
			return fmt.Errorf("%w: extra type without an extra", ErrInvalidBall)
		}
		if !validExtraType(b.ExtraType) {
			return fmt.Errorf("%w: unknown extra type %q", ErrInvalidBall, b.ExtraType)
		}
	}
	return nil
}

// Describe renders a ball the way it appears in the over strip: "W (Caught)",
// "1 Wide" or just the runs.
func Describe(b BallEvent) string {
	switch {
	case b.IsWicket:
		if b.WicketType == "" {
			return "W"
		}
		return fmt.Sprintf("W (%s)", b.WicketType)
	case b.IsExtra:
		if b.ExtraType == "" {
			return fmt.Sprintf("%d extra", b.ExtraRuns)
		}
		return fmt.Sprintf("%d %s", b.ExtraRuns, b.ExtraType)
	default:
		return strconv.Itoa(b.Runs)
	}
}

func validWicketType(w WicketType) bool {
	switch w {
	case WicketBowled, WicketCaught, WicketLBW, WicketRunOut, WicketStumped, WicketOther:
		return true
	}
	return false
}

func validExtraType(e ExtraType) bool {
	switch e {
	case ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye:
		return true
	}
	return false
}

func validRole(r Role) bool {
	switch r {
	case RoleBatsman, RoleBowler, RoleAllRounder, RoleWicketKeeper:
		return true
	}
	return false
}
