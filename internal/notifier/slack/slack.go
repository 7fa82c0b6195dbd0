package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/cricket"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier"
	"github.com/mauv0809/crease/internal/scorer"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	disabled  bool
}

// NewNotifier creates a new Notifier. Without a token messages are only logged.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	if token == "" {
		log.Warn("Slack token not set, notifications will only be logged")
		return &Notifier{channelID: channelID, metrics: metrics, disabled: true}
	}
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.disabled {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendWicketNotification(event scorer.WicketFallen, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatWicket(event), dryRun)
	return err
}

func (s *Notifier) SendInningsNotification(event scorer.InningsSwitched, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatInnings(event), dryRun)
	return err
}

// FormatScoreResponse formats the live score for a slash command response.
func (s *Notifier) FormatScoreResponse(state cricket.MatchState) (any, error) {
	return s.formatScore(state), nil
}

// FormatMatchNotFoundResponse formats the reply for an unknown match ID.
func (s *Notifier) FormatMatchNotFoundResponse(query string) (any, error) {
	text := fmt.Sprintf("No match found for '%s'. Use the ID returned when the match was created.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil),
	), nil
}

// formatWicket creates the Slack message for a fallen wicket using Block Kit.
func (s *Notifier) formatWicket(event scorer.WicketFallen) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏏 Wicket! %s %d/%d", event.BattingTeam, event.Score, event.Wickets), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var lines []string
	if event.Batsman != "" {
		how := "out"
		if event.WicketType != "" {
			how = strings.ToLower(string(event.WicketType))
		}
		lines = append(lines, fmt.Sprintf("%s is %s", event.Batsman, how))
	} else if event.WicketType != "" {
		lines = append(lines, string(event.WicketType))
	}
	if event.Bowler != "" && event.WicketType != cricket.WicketRunOut {
		lines = append(lines, fmt.Sprintf("Bowler: %s", event.Bowler))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("Overs: %s • %s bowling", event.Overs, event.BowlingTeam), true, false),
	))
	return slack.NewBlockMessage(blocks...)
}

// formatInnings creates the Slack message for the end of an innings.
func (s *Notifier) formatInnings(event scorer.InningsSwitched) slack.Message {
	headerText := slack.NewTextBlockObject("plain_text", "🏏 Innings complete", true, false)
	details := fmt.Sprintf("%s: %d/%d (%s overs)\n%s need %d to win", event.Team, event.Score, event.Wickets, event.Overs, event.NextBattingTeam, event.Target)
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(headerText),
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, true, false), nil, nil),
	)
}

// formatScore creates the live score card shown by the slash command.
func (s *Notifier) formatScore(state cricket.MatchState) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s vs %s", state.Teams[0].Name, state.Teams[1].Name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if !state.GameStarted {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "The toss has not been completed yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	score := fmt.Sprintf("%s: %d/%d\nOvers: %s\nRun Rate: %s",
		state.BattingTeam().Name, state.BattingTeamScore, state.BattingTeamWickets, cricket.OversDisplay(state), cricket.RunRate(state))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", score, true, false), nil, nil))

	over := cricket.CurrentOver(state)
	if len(over.Balls) > 0 {
		balls := make([]string, 0, len(over.Balls))
		for _, b := range over.Balls {
			balls = append(balls, cricket.Describe(b))
		}
		thisOver := fmt.Sprintf("This over: %s", strings.Join(balls, " · "))
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", thisOver, true, false), nil, nil))
	}

	var contextElements []slack.MixedElement
	for _, inn := range state.CompletedInnings {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text",
			fmt.Sprintf("%s scored %d/%d", state.Teams[inn.TeamIndex].Name, inn.Score, inn.Wickets), true, false))
	}
	if leader := cricket.Leader(state); leader != "Tie" {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s lead", leader), true, false))
	}
	if len(contextElements) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}
	return slack.NewBlockMessage(blocks...)
}
