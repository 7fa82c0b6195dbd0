package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mauv0809/crease/internal/cricket"
	"github.com/spf13/cobra"
)

var client = &http.Client{Timeout: 15 * time.Second}

var (
	ballRuns      int
	ballWicket    string
	ballExtra     string
	ballExtraRuns int
	ballBatsman   string
	ballBowler    string

	tossWinner int
	tossChoice string

	reportFormat string
	reportOut    string
)

func init() {
	ballCmd.Flags().IntVar(&ballRuns, "runs", 0, "Runs scored off the bat")
	ballCmd.Flags().StringVar(&ballWicket, "wicket", "", "Wicket type (Bowled, Caught, LBW, Run Out, Stumped, Other)")
	ballCmd.Flags().StringVar(&ballExtra, "extra", "", "Extra type (Wide, No Ball, Bye, Leg Bye)")
	ballCmd.Flags().IntVar(&ballExtraRuns, "extra-runs", 0, "Runs awarded as extras")
	ballCmd.Flags().StringVar(&ballBatsman, "batsman", "", "Batsman ID, defaults to the striker")
	ballCmd.Flags().StringVar(&ballBowler, "bowler", "", "Bowler ID, defaults to the current bowler")

	tossCmd.Flags().IntVar(&tossWinner, "winner", -1, "Index of the team that won the toss (0 or 1)")
	tossCmd.Flags().StringVar(&tossChoice, "choice", string(cricket.ChoiceBat), "What the winner elects to do (bat or bowl)")

	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "Report format (text or markdown)")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Write the report to this file instead of stdout")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(ballCmd)
	rootCmd.AddCommand(tossCmd)
	rootCmd.AddCommand(inningsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(statsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(performRequest(http.MethodGet, "/health", nil))
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(performRequest(http.MethodPost, "/matches", nil))
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(performRequest(http.MethodGet, "/matches", nil))
	},
}

var showCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Show the live score of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, body, err := performRequest(http.MethodGet, "/matches/"+url.PathEscape(args[0]), nil)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return printResponse(status, body, nil)
		}
		var state cricket.MatchState
		if err := json.Unmarshal(body, &state); err != nil {
			return fmt.Errorf("failed to decode match: %w", err)
		}
		fmt.Fprint(os.Stdout, renderScore(state))
		return nil
	},
}

var ballCmd = &cobra.Command{
	Use:   "ball <match-id>",
	Short: "Record a delivery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ball := cricket.BallEvent{
			Runs:       ballRuns,
			IsWicket:   ballWicket != "",
			WicketType: cricket.WicketType(ballWicket),
			IsExtra:    ballExtra != "",
			ExtraType:  cricket.ExtraType(ballExtra),
			ExtraRuns:  ballExtraRuns,
			BatsmanID:  ballBatsman,
			BowlerID:   ballBowler,
		}
		return printResponse(performRequest(http.MethodPost, "/matches/"+url.PathEscape(args[0])+"/balls", ball))
	},
}

var tossCmd = &cobra.Command{
	Use:   "toss <match-id>",
	Short: "Complete the toss",
	Long: `Complete the toss. With --winner the toss is settled in one step,
otherwise the choice is confirmed for the winner already drawn.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{"choice": tossChoice}
		if tossWinner >= 0 {
			body["winner"] = tossWinner
		}
		return printResponse(performRequest(http.MethodPost, "/matches/"+url.PathEscape(args[0])+"/toss", body))
	},
}

var inningsCmd = &cobra.Command{
	Use:   "innings <match-id>",
	Short: "End the current innings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(performRequest(http.MethodPost, "/matches/"+url.PathEscape(args[0])+"/innings", nil))
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <match-id>",
	Short: "Download the match report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/matches/" + url.PathEscape(args[0]) + "/report?format=" + url.QueryEscape(reportFormat)
		status, body, err := performRequest(http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		if status != http.StatusOK || reportOut == "" {
			return printResponse(status, body, nil)
		}
		if err := os.WriteFile(reportOut, body, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		color.New(color.FgGreen).Fprintf(os.Stdout, "Report written to %s\n", reportOut)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <match-id>",
	Short: "Delete a match and its ball log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(performRequest(http.MethodDelete, "/matches/"+url.PathEscape(args[0]), nil))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(performRequest(http.MethodGet, "/metrics", nil))
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get lifetime scoring totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(performRequest(http.MethodGet, "/stats", nil))
	},
}

// performRequest sends a request to the server, encoding body as JSON when set.
func performRequest(method, endpoint string, body any) (int, []byte, error) {
	target := host + endpoint
	if dryRun {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + "dry_run=true"
	}
	fmt.Printf("Making request to %s %s\n", method, target)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func printResponse(status int, body []byte, err error) error {
	if err != nil {
		return err
	}
	statusColor := color.New(color.FgGreen)
	if status >= http.StatusBadRequest {
		statusColor = color.New(color.FgRed)
	}
	statusColor.Fprintf(os.Stdout, "Status Code: %d\n", status)
	fmt.Println("Response Body:")

	var pretty bytes.Buffer
	if json.Indent(&pretty, body, "", "  ") == nil {
		fmt.Println(pretty.String())
	} else {
		fmt.Println(string(body))
	}
	return nil
}

// renderScore prints the live score as a small table.
func renderScore(state cricket.MatchState) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s vs %s", state.Teams[0].Name, state.Teams[1].Name))
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Batting", "Score", "Overs", "Run Rate"})
	for _, inn := range state.CompletedInnings {
		legal := 0
		for _, o := range inn.Overs {
			legal += cricket.LegalDeliveries(o)
		}
		t.AppendRow(table.Row{state.Teams[inn.TeamIndex].Name, fmt.Sprintf("%d/%d", inn.Score, inn.Wickets), cricket.OversNotation(legal), ""})
	}
	if state.GameStarted {
		t.AppendRow(table.Row{state.BattingTeam().Name, fmt.Sprintf("%d/%d", state.BattingTeamScore, state.BattingTeamWickets), cricket.OversDisplay(state), cricket.RunRate(state)})
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	if !state.GameStarted {
		color.New(color.FgYellow).Fprintln(&b, "The toss has not been completed yet.")
		return b.String()
	}
	balls := cricket.CurrentOver(state).Balls
	if len(balls) > 0 {
		strip := make([]string, 0, len(balls))
		for _, ball := range balls {
			strip = append(strip, cricket.Describe(ball))
		}
		color.New(color.FgCyan).Fprintf(&b, "This over: %s\n", strings.Join(strip, " · "))
	}
	fmt.Fprintf(&b, "Leading: %s\n", cricket.Leader(state))
	return b.String()
}
