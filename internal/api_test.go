//go:build integration_test || all_tests

package internal_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/forum"
	"github.com/2beens/liftlog/internal/profile"
	"github.com/2beens/liftlog/internal/workouts"
	"github.com/2beens/liftlog/internal/workouts/stats"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path, token string, body any) (*http.Response, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, respBytes
}

// registerAndLogin creates a fresh user and returns its id and session token.
func (s *IntegrationTestSuite) registerAndLogin(ctx context.Context) (string, string) {
	t := s.T()
	creds := auth.Credentials{
		Username: gofakeit.Username() + gofakeit.DigitN(4),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	}

	resp, body := s.doRequest(ctx, "POST", "/a/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var registerResp map[string]string
	require.NoError(t, json.Unmarshal(body, &registerResp))
	require.NotEmpty(t, registerResp["id"])

	resp, body = s.doRequest(ctx, "POST", "/a/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var loginResp map[string]string
	require.NoError(t, json.Unmarshal(body, &loginResp))
	require.NotEmpty(t, loginResp["token"])

	return registerResp["id"], loginResp["token"]
}

func (s *IntegrationTestSuite) TestAuth_RegisterLoginLogout() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	t := s.T()

	creds := auth.Credentials{Username: "lifter" + gofakeit.DigitN(6), Password: "squat-heavy"}
	resp, _ := s.doRequest(ctx, "POST", "/a/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = s.doRequest(ctx, "POST", "/a/register", "", creds)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = s.doRequest(ctx, "POST", "/a/register", "", auth.Credentials{Username: "ab", Password: "squat-heavy"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := s.doRequest(ctx, "POST", "/a/login", "", auth.Credentials{Username: creds.Username, Password: "bench-light"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "wrong credentials")

	resp, body = s.doRequest(ctx, "POST", "/a/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	require.NoError(t, json.Unmarshal(body, &loginResp))
	token := loginResp["token"]

	resp, _ = s.doRequest(ctx, "GET", "/profile", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.doRequest(ctx, "GET", "/a/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "logged-out", string(body))

	resp, _ = s.doRequest(ctx, "GET", "/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestWorkouts_SessionsLifecycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	t := s.T()

	resp, _ := s.doRequest(ctx, "GET", "/workouts/days", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, token := s.registerAndLogin(ctx)

	push := workouts.WorkoutSession{
		Label: "Push",
		Exercises: []workouts.ExerciseEntry{
			{Name: "Bench Press", Sets: []workouts.SetEntry{{Weight: 80, Reps: 5}, {Weight: 85, Reps: 3}}},
		},
	}
	resp, body := s.doRequest(ctx, "POST", "/workouts/days/2024-05-01/sessions", token, push)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.doRequest(ctx, "POST", "/workouts/days/2024-05-01/sessions", token, workouts.WorkoutSession{Label: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

	legs := workouts.WorkoutSession{
		Label:     "Legs",
		Exercises: []workouts.ExerciseEntry{{Name: "Squat", Sets: []workouts.SetEntry{{Weight: 120, Reps: 5}}}},
	}
	resp, body = s.doRequest(ctx, "PUT", "/workouts/days/2024-05-01/sessions/0", token, legs)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = s.doRequest(ctx, "GET", "/workouts/days/2024-05-01", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var day workouts.DaySessionRecord
	require.NoError(t, json.Unmarshal(body, &day))
	require.Len(t, day.Sessions, 1)
	assert.Equal(t, "Legs", day.Sessions[0].Label)

	resp, body = s.doRequest(ctx, "GET", "/workouts/calendar/2024-05", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var calendar map[string][]string
	require.NoError(t, json.Unmarshal(body, &calendar))
	assert.Equal(t, []string{"2024-05-01"}, calendar["dates"])

	resp, body = s.doRequest(ctx, "GET", "/stats?timeframe=all", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var report stats.Report
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, 1, report.TotalRecords)

	resp, _ = s.doRequest(ctx, "GET", "/stats?timeframe=decade", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.doRequest(ctx, "DELETE", "/workouts/days/2024-05-01/sessions/0", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.doRequest(ctx, "GET", "/workouts/days?from=2024-05-01&to=2024-05-31", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var days []workouts.DaySessionRecord
	require.NoError(t, json.Unmarshal(body, &days))
	assert.Empty(t, days)
}

func (s *IntegrationTestSuite) TestForum_ThreadsAndReplies() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	t := s.T()

	// listing forums is public
	resp, body := s.doRequest(ctx, "GET", "/forums", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var forums []forum.Forum
	require.NoError(t, json.Unmarshal(body, &forums))
	require.Len(t, forums, 2)

	_, token := s.registerAndLogin(ctx)

	resp, body = s.doRequest(ctx, "POST", "/forums/gym/threads", token, map[string]string{
		"title":   "Deload weeks",
		"content": "How often do you **deload**?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var thread forum.Thread
	require.NoError(t, json.Unmarshal(body, &thread))
	assert.Equal(t, forum.DefaultDisplayName, thread.DisplayName)
	assert.Contains(t, thread.ContentHTML, "<strong>deload</strong>")

	resp, _ = s.doRequest(ctx, "POST", "/forums/nope/threads", token, map[string]string{"title": "x", "content": "y"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.doRequest(ctx, "POST", fmt.Sprintf("/threads/%d/replies", thread.ID), token, map[string]string{
		"content": "every 6th week",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.doRequest(ctx, "GET", fmt.Sprintf("/threads/%d", thread.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stored forum.Thread
	require.NoError(t, json.Unmarshal(body, &stored))
	assert.Equal(t, 1, stored.ReplyCount)

	resp, body = s.doRequest(ctx, "GET", fmt.Sprintf("/threads/%d/replies", thread.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var replies []forum.Reply
	require.NoError(t, json.Unmarshal(body, &replies))
	require.Len(t, replies, 1)
	assert.Equal(t, "every 6th week", replies[0].Content)
}

func (s *IntegrationTestSuite) TestProfile_Settings() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	t := s.T()

	_, token := s.registerAndLogin(ctx)

	resp, body := s.doRequest(ctx, "GET", "/profile/settings", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var settings profile.Settings
	require.NoError(t, json.Unmarshal(body, &settings))
	assert.Equal(t, profile.DefaultSettings(), settings)

	resp, body = s.doRequest(ctx, "PUT", "/profile/settings", token, map[string]any{"darkMode": true})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &settings))
	assert.True(t, settings.DarkMode)
	assert.Equal(t, 3, settings.Reminders.Frequency)

	resp, body = s.doRequest(ctx, "PUT", "/profile", token, map[string]any{"displayName": "Iron Mike", "bio": "lifts"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var p profile.Profile
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "Iron Mike", p.DisplayName)
}

func (s *IntegrationTestSuite) TestMCP_RequiresSecret() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	t := s.T()

	resp, _ := s.doRequest(ctx, "POST", "/mcp", "", map[string]any{"jsonrpc": "2.0", "id": 1, "method": "ping"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
