package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/mfarag11047/RepCoach/internal/exercises"
	"github.com/mfarag11047/RepCoach/internal/recovery"
	"github.com/mfarag11047/RepCoach/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) newAppRequest(ctx context.Context, method, path string, body []byte) *http.Request {
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, bytes.NewReader(body))
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Authorization", testAppSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func (s *IntegrationTestSuite) doAndDecode(req *http.Request, expectedStatus int, target any) {
	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.Equal(s.T(), expectedStatus, resp.StatusCode, string(respBytes))

	if target != nil {
		require.NoError(s.T(), json.Unmarshal(respBytes, target))
	}
}

func (s *IntegrationTestSuite) finishWorkoutRequest(ctx context.Context, finishReq workouts.FinishRequest) workouts.Entry {
	reqJson, err := json.Marshal(finishReq)
	require.NoError(s.T(), err)

	var entry workouts.Entry
	s.doAndDecode(s.newAppRequest(ctx, "POST", "/workouts/finish", reqJson), http.StatusCreated, &entry)
	return entry
}

func (s *IntegrationTestSuite) recoveryStatesRequest(ctx context.Context, at time.Time) map[string]recovery.MuscleState {
	path := "/recovery?at=" + url.QueryEscape(at.Format(time.RFC3339))

	var statusResp struct {
		States []recovery.MuscleState `json:"states"`
	}
	s.doAndDecode(s.newAppRequest(ctx, "GET", path, nil), http.StatusOK, &statusResp)

	states := make(map[string]recovery.MuscleState, len(statusResp.States))
	for _, st := range statusResp.States {
		states[st.Muscle] = st
	}
	return states
}

func (s *IntegrationTestSuite) TestWorkoutsAndRecovery() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllWorkouts(ctx)
	defer s.deleteAllWorkouts(ctx)

	var library exercises.LibraryResponse
	s.doAndDecode(s.newAppRequest(ctx, "GET", "/exercises", nil), http.StatusOK, &library)
	require.NotEmpty(t, library.Exercises)

	var benchPress exercises.Exercise
	for _, ex := range library.Exercises {
		if ex.ID == "barbell_bench_press" {
			benchPress = ex
		}
	}
	require.Equal(t, "Chest", benchPress.PrimaryMuscle)

	finishedAt := time.Date(2024, 3, 1, 17, 45, 12, 0, time.UTC)
	entry := s.finishWorkoutRequest(ctx, workouts.FinishRequest{
		TotalTime:  3600,
		FinishedAt: &finishedAt,
		Exercises: []workouts.LoggedExercise{
			{
				Exercise: benchPress,
				Sets: []workouts.Set{
					{Reps: 10, Weight: 100, Status: workouts.SetLogged},
					{Reps: 10, Weight: 100, Status: workouts.SetLogged},
					{Reps: 10, Weight: 100, Status: workouts.SetPending},
				},
			},
		},
	})
	assert.Equal(t, "2024-03-01T17:45:12.000Z", entry.Key)
	assert.Equal(t, 2000.0, entry.Workout.TotalVolume)
	assert.Equal(t, 40, entry.Workout.Calories)
	require.Len(t, entry.Workout.Exercises, 1)
	assert.Len(t, entry.Workout.Exercises[0].Sets, 2)

	t.Run("same workout twice", func(t *testing.T) {
		reqJson, err := json.Marshal(workouts.FinishRequest{
			TotalTime:  3600,
			FinishedAt: &finishedAt,
			Exercises: []workouts.LoggedExercise{
				{
					Exercise: benchPress,
					Sets:     []workouts.Set{{Reps: 5, Weight: 60, Status: workouts.SetLogged}},
				},
			},
		})
		require.NoError(t, err)
		s.doAndDecode(s.newAppRequest(ctx, "POST", "/workouts/finish", reqJson), http.StatusConflict, nil)
	})

	t.Run("get workout", func(t *testing.T) {
		var stored workouts.Entry
		s.doAndDecode(s.newAppRequest(ctx, "GET", "/workouts/"+url.PathEscape(entry.Key), nil), http.StatusOK, &stored)
		assert.Equal(t, entry.Key, stored.Key)
		assert.Equal(t, entry.Workout.TotalVolume, stored.Workout.TotalVolume)
	})

	t.Run("history page", func(t *testing.T) {
		var page workouts.HistoryPageResponse
		s.doAndDecode(s.newAppRequest(ctx, "GET", "/workouts/history/page/1/size/10", nil), http.StatusOK, &page)
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Workouts, 1)
		assert.Equal(t, entry.Key, page.Workouts[0].Key)
	})

	t.Run("recovery right after the workout", func(t *testing.T) {
		states := s.recoveryStatesRequest(ctx, finishedAt)
		chest, ok := states["Chest"]
		require.True(t, ok)
		assert.Equal(t, 0, chest.Recovery)
		assert.Equal(t, recovery.StateFatigued, chest.State)

		triceps, ok := states["Triceps"]
		require.True(t, ok)
		assert.Equal(t, 0, triceps.Recovery)

		quads, ok := states["Quads"]
		require.True(t, ok)
		assert.Equal(t, 100, quads.Recovery)
	})

	t.Run("recovery a week later", func(t *testing.T) {
		states := s.recoveryStatesRequest(ctx, finishedAt.Add(7*24*time.Hour))
		for muscle, st := range states {
			assert.Equal(t, 100, st.Recovery, muscle)
			assert.Equal(t, recovery.StateFresh, st.State, muscle)
		}
	})

	t.Run("delete workout", func(t *testing.T) {
		var deleteResp workouts.DeleteWorkoutResponse
		s.doAndDecode(s.newAppRequest(ctx, "DELETE", "/workouts/"+url.PathEscape(entry.Key), nil), http.StatusOK, &deleteResp)
		assert.Equal(t, entry.Key, deleteResp.DeletedKey)

		s.doAndDecode(s.newAppRequest(ctx, "GET", "/workouts/"+url.PathEscape(entry.Key), nil), http.StatusNotFound, nil)

		states := s.recoveryStatesRequest(ctx, finishedAt)
		assert.Equal(t, 100, states["Chest"].Recovery)
	})
}

func (s *IntegrationTestSuite) TestUnauthorizedRequests() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/recovery", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NoError(t, resp.Body.Close())

	// a logged admin passes with the session token
	token := doLogin(ctx, t, s.httpClient)
	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/exercises/muscles", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-REPCOACH-TOKEN", token)

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, resp.Body.Close())
}
