package report

import (
	"errors"

	"github.com/mauv0809/crease/internal/cricket"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned for formats other than text and markdown.
var ErrUnknownFormat = errors.New("unknown report format")

// InningsTotal is the headline of one innings.
type InningsTotal struct {
	Number  int    `json:"number"`
	Team    string `json:"team"`
	Score   int    `json:"score"`
	Wickets int    `json:"wickets"`
	Overs   string `json:"overs"`
}

// Projection is the read-only view of a match that reports are built from.
type Projection struct {
	MatchID       string                `json:"match_id"`
	Teams         [2]cricket.Team       `json:"teams"`
	BattingTeam   string                `json:"batting_team"`
	InningsNumber int                   `json:"innings_number"`
	Score         int                   `json:"score"`
	Wickets       int                   `json:"wickets"`
	CurrentOver   int                   `json:"current_over"`
	CurrentBall   int                   `json:"current_ball"`
	Overs         string                `json:"overs"`
	RunRate       string                `json:"run_rate"`
	Toss          *cricket.TossResult   `json:"toss,omitempty"`
	TossLine      string                `json:"toss_line,omitempty"`
	Leader        string                `json:"leader"`
	OverSummaries []cricket.OverSummary `json:"over_summaries"`
	Previous      []InningsTotal        `json:"previous_innings,omitempty"`
	Scorecards    []cricket.Scorecard   `json:"scorecards"`
}

// Document is a rendered report ready to be served or written to disk.
type Document struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}
