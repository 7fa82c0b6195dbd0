package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/config"
	"github.com/mauv0809/crease/internal/cricket"
	"github.com/mauv0809/crease/internal/database"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier"
	"github.com/mauv0809/crease/internal/pubsub"
	"github.com/mauv0809/crease/internal/scorebook"
	"github.com/mauv0809/crease/internal/scorer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSlackSigningSecret = "test-signing-secret"

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, notifier notifier.Notifier, slackSigningSecret string) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	cfg := config.Config{Slack: config.SlackConfig{SigningSecret: slackSigningSecret}}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	pubsub := pubsub.NewMock()
	svc := scorer.New(scorebook.New(db), metrics.NewCounterStore(db), metricsSvc, pubsub)
	server := NewServer(svc, metricsSvc, metricsHandler, cfg, notifier, pubsub)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, teardown
}

// do sends a JSON request through the router and returns the recorder.
func do(t *testing.T, server *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) cricket.MatchState {
	t.Helper()
	var state cricket.MatchState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	return state
}

// startMatch creates a match where the Lions bat with Asha on strike and Eli bowling.
func startMatch(t *testing.T, server *Server) string {
	t.Helper()
	rr := do(t, server, "POST", "/matches", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	matchID := decodeState(t, rr).ID

	teams := map[string]any{"teams": []map[string]any{
		{"id": "1", "name": "Lions", "players": []map[string]any{
			{"id": "a1", "name": "Asha", "role": "Batsman"},
			{"id": "a2", "name": "Ben", "role": "Bowler"},
		}},
		{"id": "2", "name": "Tigers", "players": []map[string]any{
			{"id": "b1", "name": "Dev", "role": "Batsman"},
			{"id": "b2", "name": "Eli", "role": "Bowler"},
		}},
	}}
	require.Equal(t, http.StatusOK, do(t, server, "PUT", "/matches/"+matchID+"/teams", teams).Code)
	require.Equal(t, http.StatusOK, do(t, server, "POST", "/matches/"+matchID+"/toss", map[string]any{"winner": 0, "choice": "bat"}).Code)
	require.Equal(t, http.StatusOK, do(t, server, "PUT", "/matches/"+matchID+"/batsmen", map[string]any{"striker": "a1", "non_striker": "a2"}).Code)
	require.Equal(t, http.StatusOK, do(t, server, "PUT", "/matches/"+matchID+"/bowler", map[string]any{"bowler": "b2"}).Code)
	return matchID
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	bodyBytes := []byte(form.Encode())
	req, err := http.NewRequest("POST", targetURL, bytes.NewReader(bodyBytes))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, string(bodyBytes))
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))
	return req
}

// createPushRequest wraps an event the way a Pub/Sub push subscription does.
func createPushRequest(t *testing.T, targetURL string, event any) *http.Request {
	t.Helper()
	data, err := pubsub.Encode(event)
	require.NoError(t, err)
	body := fmt.Sprintf(`{"subscription":"projects/test/subscriptions/sub","message":{"data":"%s","messageId":"1"}}`, base64.StdEncoding.EncodeToString(data))
	req, err := http.NewRequest("POST", targetURL, strings.NewReader(body))
	require.NoError(t, err)
	return req
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	rr := do(t, server, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestVerboseLogsStayOnTheRequest(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetLevel(log.InfoLevel)
	defer log.SetOutput(os.Stderr)

	rr := do(t, server, "GET", "/health?verbose=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, buf.String(), "Received health check request")
	assert.Equal(t, log.InfoLevel, log.GetLevel(), "global level untouched")

	buf.Reset()
	do(t, server, "GET", "/health", nil)
	assert.NotContains(t, buf.String(), "Received health check request")
}

func TestMatchLifecycle(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	matchID := startMatch(t, server)

	rr := do(t, server, "POST", "/matches/"+matchID+"/balls", map[string]any{"runs": 4})
	require.Equal(t, http.StatusOK, rr.Code)
	state := decodeState(t, rr)
	assert.Equal(t, 4, state.BattingTeamScore)
	assert.Equal(t, 1, state.CurrentBall)

	rr = do(t, server, "POST", "/matches/"+matchID+"/balls", map[string]any{"is_wicket": true, "wicket_type": "Bowled"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeState(t, rr).BattingTeamWickets)

	t.Run("match is listed", func(t *testing.T) {
		rr := do(t, server, "GET", "/matches", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var matches []scorebook.MatchSummary
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
		require.Len(t, matches, 1)
		assert.Equal(t, matchID, matches[0].ID)
		assert.Equal(t, 4, matches[0].Score)
	})

	t.Run("scorecard", func(t *testing.T) {
		rr := do(t, server, "GET", "/matches/"+matchID+"/scorecard", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var card cricket.Scorecard
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &card))
		assert.Equal(t, "Lions", card.BattingTeam)
		assert.Equal(t, "Tigers", card.BowlingTeam)
	})

	t.Run("deliveries", func(t *testing.T) {
		rr := do(t, server, "GET", "/matches/"+matchID+"/deliveries", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var deliveries []scorebook.Delivery
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &deliveries))
		require.Len(t, deliveries, 2)
		assert.Equal(t, 4, deliveries[0].Ball.Runs)
		assert.Equal(t, "a1", deliveries[0].Ball.BatsmanID)
		assert.Equal(t, "b2", deliveries[0].Ball.BowlerID)
		assert.True(t, deliveries[1].Ball.IsWicket)
	})

	t.Run("report", func(t *testing.T) {
		rr := do(t, server, "GET", "/matches/"+matchID+"/report?format=markdown", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/markdown; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), ".md")
		assert.Contains(t, rr.Body.String(), "Lions vs Tigers")
	})

	t.Run("stats", func(t *testing.T) {
		rr := do(t, server, "GET", "/stats", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var totals map[string]int
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &totals))
		assert.Equal(t, 1, totals[metrics.KeyMatchesCreated])
		assert.Equal(t, 2, totals[metrics.KeyBallsRecorded])
		assert.Equal(t, 1, totals[metrics.KeyWickets])
	})

	t.Run("innings switch", func(t *testing.T) {
		rr := do(t, server, "POST", "/matches/"+matchID+"/innings", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		state := decodeState(t, rr)
		assert.Equal(t, 1, state.CurrentInningsTeamIndex)
		assert.Equal(t, 0, state.BattingTeamScore)

		rr = do(t, server, "GET", "/matches/"+matchID+"/scorecard?innings=1", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		rr = do(t, server, "GET", "/matches/"+matchID+"/scorecard?innings=5", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rr := do(t, server, "DELETE", "/matches/"+matchID, nil)
		require.Equal(t, http.StatusNoContent, rr.Code)
		rr = do(t, server, "GET", "/matches/"+matchID, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRosterHandlers(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	rr := do(t, server, "POST", "/matches", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	matchID := decodeState(t, rr).ID

	rr = do(t, server, "PUT", "/matches/"+matchID+"/teams/1/name", map[string]any{"name": "Tigers"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Tigers", decodeState(t, rr).Teams[1].Name)

	rr = do(t, server, "POST", "/matches/"+matchID+"/players", map[string]any{"team": 0, "name": "  Asha ", "role": "All-rounder"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var added addPlayerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))
	assert.Equal(t, "Asha", added.Player.Name)
	assert.NotEmpty(t, added.Player.ID)
	require.Len(t, added.Match.Teams[0].Players, 1)

	rr = do(t, server, "DELETE", "/matches/"+matchID+"/players/"+added.Player.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeState(t, rr).Teams[0].Players)

	t.Run("unknown player", func(t *testing.T) {
		rr := do(t, server, "DELETE", "/matches/"+matchID+"/players/nobody", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("bad team index", func(t *testing.T) {
		rr := do(t, server, "PUT", "/matches/"+matchID+"/teams/x/name", map[string]any{"name": "Lions"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		rr = do(t, server, "PUT", "/matches/"+matchID+"/teams/2/name", map[string]any{"name": "Lions"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestErrorMapping(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	testCases := []struct {
		name   string
		method string
		target func(matchID string) string
		body   any
		status int
	}{
		{"unknown match", "GET", func(string) string { return "/matches/missing" }, nil, http.StatusNotFound},
		{"toss without players", "POST", func(id string) string { return "/matches/" + id + "/toss" }, map[string]any{"winner": 0, "choice": "bat"}, http.StatusConflict},
		{"confirm without winner", "POST", func(id string) string { return "/matches/" + id + "/toss" }, map[string]any{"choice": "bat"}, http.StatusConflict},
		{"invalid ball", "POST", func(id string) string { return "/matches/" + id + "/balls" }, map[string]any{"runs": -1}, http.StatusBadRequest},
		{"malformed body", "POST", func(id string) string { return "/matches/" + id + "/balls" }, "not a ball", http.StatusBadRequest},
		{"unknown report format", "GET", func(id string) string { return "/matches/" + id + "/report?format=pdf" }, nil, http.StatusBadRequest},
		{"same batsman twice", "PUT", func(id string) string { return "/matches/" + id + "/batsmen" }, map[string]any{"striker": "x", "non_striker": "x"}, http.StatusBadRequest},
		{"wrong method", "PATCH", func(id string) string { return "/matches/" + id }, nil, http.StatusMethodNotAllowed},
	}

	rr := do(t, server, "POST", "/matches", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	matchID := decodeState(t, rr).ID

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, server, tc.method, tc.target(matchID), tc.body)
			assert.Equal(t, tc.status, rr.Code, rr.Body.String())
		})
	}
}

func TestDryRun(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	matchID := startMatch(t, server)

	rr := do(t, server, "POST", "/matches/"+matchID+"/balls?dry_run=true", map[string]any{"runs": 6})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 6, decodeState(t, rr).BattingTeamScore, "dry run returns the would-be state")

	rr = do(t, server, "GET", "/matches/"+matchID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeState(t, rr).BattingTeamScore, "dry run must not change the match")

	rr = do(t, server, "DELETE", "/matches/"+matchID+"?dry_run=true", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, http.StatusOK, do(t, server, "GET", "/matches/"+matchID, nil).Code)
}

func TestPubSubPushHandlers(t *testing.T) {
	t.Run("wicket fallen", func(t *testing.T) {
		mockNotifier := notifier.NewMock()
		server, teardown := setupTestServer(t, mockNotifier, "")
		defer teardown()

		event := scorer.WicketFallen{MatchID: "m1", BattingTeam: "Lions", Batsman: "Asha", WicketType: cricket.WicketBowled, Score: 12, Wickets: 1}
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, createPushRequest(t, "/pubsub/wicket-fallen?dry_run=true", event))

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.SendWicketNotificationCalls, 1)
		assert.Equal(t, event, mockNotifier.SendWicketNotificationCalls[0].Event)
		assert.True(t, mockNotifier.SendWicketNotificationCalls[0].DryRun)
	})

	t.Run("innings switched", func(t *testing.T) {
		mockNotifier := notifier.NewMock()
		server, teardown := setupTestServer(t, mockNotifier, "")
		defer teardown()

		event := scorer.InningsSwitched{MatchID: "m1", InningsNumber: 1, Team: "Lions", Score: 120, NextBattingTeam: "Tigers", Target: 121}
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, createPushRequest(t, "/pubsub/innings-switched", event))

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.SendInningsNotificationCalls, 1)
		assert.Equal(t, event, mockNotifier.SendInningsNotificationCalls[0].Event)
	})

	t.Run("notifier failure", func(t *testing.T) {
		mockNotifier := notifier.NewMock()
		mockNotifier.SendWicketNotificationFunc = func(scorer.WicketFallen, bool) error {
			return errors.New("slack is down")
		}
		server, teardown := setupTestServer(t, mockNotifier, "")
		defer teardown()

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, createPushRequest(t, "/pubsub/wicket-fallen", scorer.WicketFallen{MatchID: "m1"}))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("invalid envelope", func(t *testing.T) {
		mockNotifier := notifier.NewMock()
		server, teardown := setupTestServer(t, mockNotifier, "")
		defer teardown()

		for _, body := range []string{`not json`, `{"message":{"data":"%%%"}}`} {
			req, err := http.NewRequest("POST", "/pubsub/wicket-fallen", strings.NewReader(body))
			require.NoError(t, err)
			rr := httptest.NewRecorder()
			server.Router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		}
		assert.Empty(t, mockNotifier.SendWicketNotificationCalls)
	})
}

func TestScoreCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatScoreResponseFunc = func(state cricket.MatchState) (any, error) {
		return slack.NewBlockMessage(slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", state.Teams[0].Name, false, false), nil, nil)), nil
	}
	mockNotifier.FormatMatchNotFoundFunc = func(query string) (any, error) {
		return slack.Message{}, nil
	}
	server, teardown := setupTestServer(t, mockNotifier, testSlackSigningSecret)
	defer teardown()

	matchID := startMatch(t, server)

	t.Run("score by match ID", func(t *testing.T) {
		mockNotifier.Reset()
		form := url.Values{"text": {matchID}, "command": {"/score"}}
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, createSlackCommandRequest(t, "/slack/command/score", form, testSlackSigningSecret))

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		require.Len(t, mockNotifier.FormatScoreResponseCalls, 1)
		assert.Equal(t, matchID, mockNotifier.FormatScoreResponseCalls[0].ID)
		assert.Contains(t, rr.Body.String(), "Lions")
	})

	t.Run("latest match without text", func(t *testing.T) {
		mockNotifier.Reset()
		form := url.Values{"text": {""}, "command": {"/score"}}
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, createSlackCommandRequest(t, "/slack/command/score", form, testSlackSigningSecret))

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.FormatScoreResponseCalls, 1)
		assert.Equal(t, matchID, mockNotifier.FormatScoreResponseCalls[0].ID)
	})

	t.Run("unknown match", func(t *testing.T) {
		mockNotifier.Reset()
		form := url.Values{"text": {"nope"}, "command": {"/score"}}
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, createSlackCommandRequest(t, "/slack/command/score", form, testSlackSigningSecret))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"nope"}, mockNotifier.FormatMatchNotFoundResponseCalls)
		assert.Empty(t, mockNotifier.FormatScoreResponseCalls)
	})

	t.Run("bad signature", func(t *testing.T) {
		mockNotifier.Reset()
		form := url.Values{"text": {matchID}}
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, createSlackCommandRequest(t, "/slack/command/score", form, "wrong-secret"))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, mockNotifier.FormatScoreResponseCalls)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	startMatch(t, server)

	rr := do(t, server, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "crease_matches_created_total")
}
