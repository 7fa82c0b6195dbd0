package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const title = "Cricket Match Report"

// FileName is the download name of a report produced on date.
func FileName(format Format, date time.Time) string {
	ext := "txt"
	if format == FormatMarkdown {
		ext = "md"
	}
	return fmt.Sprintf("cricket_match_%s.%s", date.Format("2006-01-02"), ext)
}

// Render lays the projection out as a text or markdown document.
func Render(p Projection, format Format, date time.Time) (Document, error) {
	var r renderer
	switch format {
	case FormatText, "":
		format = FormatText
		r = textRenderer{}
	case FormatMarkdown:
		r = markdownRenderer{}
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	var b strings.Builder
	r.heading(&b, 1, title)
	fmt.Fprintf(&b, "%s vs %s\n", p.Teams[0].Name, p.Teams[1].Name)
	fmt.Fprintf(&b, "Generated: %s\n", date.Format("2006-01-02 15:04"))
	if p.TossLine != "" {
		fmt.Fprintf(&b, "%s\n", p.TossLine)
	}
	b.WriteString("\n")

	r.heading(&b, 2, "Current Score")
	fmt.Fprintf(&b, "%s: %d/%d (%s innings)\n", p.BattingTeam, p.Score, p.Wickets, humanize.Ordinal(p.InningsNumber))
	fmt.Fprintf(&b, "Overs: %s\n", p.Overs)
	fmt.Fprintf(&b, "Run Rate: %s\n", p.RunRate)
	for _, inn := range p.Previous {
		fmt.Fprintf(&b, "%s innings: %s %d/%d (%s overs)\n", humanize.Ordinal(inn.Number), inn.Team, inn.Score, inn.Wickets, inn.Overs)
	}
	if p.Leader == "Tie" {
		b.WriteString("Scores are level\n")
	} else {
		fmt.Fprintf(&b, "Leading: %s\n", p.Leader)
	}
	b.WriteString("\n")

	for _, team := range p.Teams {
		r.heading(&b, 2, team.Name+" Lineup")
		t := newTable()
		t.AppendHeader(table.Row{"#", "Name", "Role"})
		for i, pl := range team.Players {
			t.AppendRow(table.Row{i + 1, pl.Name, pl.Role})
		}
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d players", len(team.Players)), ""})
		r.table(&b, t)
	}

	r.heading(&b, 2, "Over Summary")
	overs := newTable()
	overs.AppendHeader(table.Row{"Over", "Runs", "Wickets", "Status"})
	for _, o := range p.OverSummaries {
		overs.AppendRow(table.Row{o.Number, o.Runs, o.Wickets, o.Status()})
	}
	r.table(&b, overs)

	for _, card := range p.Scorecards {
		if len(card.Batting) == 0 && len(card.Bowling) == 0 {
			continue
		}
		r.heading(&b, 2, fmt.Sprintf("%s innings: %s", humanize.Ordinal(card.InningsNumber), card.BattingTeam))

		bat := newTable()
		bat.AppendHeader(table.Row{"Batsman", "Runs", "Balls", "SR"})
		for _, l := range card.Batting {
			bat.AppendRow(table.Row{l.Name, l.Runs, l.BallsFaced, l.StrikeRate})
		}
		r.table(&b, bat)

		bowl := newTable()
		bowl.AppendHeader(table.Row{"Bowler", "Overs", "Runs", "Wickets", "Econ"})
		for _, l := range card.Bowling {
			bowl.AppendRow(table.Row{l.Name, l.Overs, l.RunsGiven, l.Wickets, l.EconomyRate})
		}
		r.table(&b, bowl)
	}

	return Document{
		FileName:    FileName(format, date),
		ContentType: r.contentType(),
		Body:        b.String(),
	}, nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

type renderer interface {
	heading(b *strings.Builder, level int, text string)
	table(b *strings.Builder, t table.Writer)
	contentType() string
}

type textRenderer struct{}

func (textRenderer) heading(b *strings.Builder, level int, text string) {
	b.WriteString(text + "\n")
	underline := "-"
	if level == 1 {
		underline = "="
	}
	b.WriteString(strings.Repeat(underline, len(text)) + "\n")
}

func (textRenderer) table(b *strings.Builder, t table.Writer) {
	b.WriteString(t.Render() + "\n\n")
}

func (textRenderer) contentType() string { return "text/plain; charset=utf-8" }

type markdownRenderer struct{}

func (markdownRenderer) heading(b *strings.Builder, level int, text string) {
	b.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
}

func (markdownRenderer) table(b *strings.Builder, t table.Writer) {
	b.WriteString(t.RenderMarkdown() + "\n\n")
}

func (markdownRenderer) contentType() string { return "text/markdown; charset=utf-8" }
