//go:build integration_test || all_tests

package workouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/mfarag11047/RepCoach/internal/testinternals"
	"github.com/mfarag11047/RepCoach/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo_Add_Get_Delete(t *testing.T) {
	ctx := context.Background()
	pool, teardown := testinternals.NewPostgres(t)
	defer teardown()
	testinternals.TruncateAll(t, pool)
	repo := workouts.NewRepo(pool)

	exName := gofakeit.Name()
	w, err := workouts.Finish([]workouts.LoggedExercise{
		loggedExercise(exName, "Back", []string{"Biceps"}, logged(8, 120)),
	}, 1200)
	require.NoError(t, err)

	entry := workouts.Entry{
		Key:     workouts.NewKey(time.Now()),
		Workout: w,
	}
	require.NoError(t, repo.Add(ctx, entry))
	assert.ErrorIs(t, repo.Add(ctx, entry), workouts.ErrWorkoutExists)

	stored, err := repo.Get(ctx, entry.Key)
	require.NoError(t, err)
	assert.Equal(t, entry.Key, stored.Key)
	assert.Equal(t, w.TotalVolume, stored.Workout.TotalVolume)
	require.Len(t, stored.Workout.Exercises, 1)
	assert.Equal(t, exName, stored.Workout.Exercises[0].ID)
	assert.Equal(t, []string{"Biceps"}, stored.Workout.Exercises[0].SecondaryMuscles)

	require.NoError(t, repo.Delete(ctx, entry.Key))
	assert.ErrorIs(t, repo.Delete(ctx, entry.Key), workouts.ErrWorkoutNotFound)
	_, err = repo.Get(ctx, entry.Key)
	assert.ErrorIs(t, err, workouts.ErrWorkoutNotFound)
}

func TestRepo_History_List_Range(t *testing.T) {
	ctx := context.Background()
	pool, teardown := testinternals.NewPostgres(t)
	defer teardown()
	testinternals.TruncateAll(t, pool)
	repo := workouts.NewRepo(pool)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	keys := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		key := workouts.NewKey(base.Add(time.Duration(i) * 24 * time.Hour))
		keys = append(keys, key)
		require.NoError(t, repo.Add(ctx, workouts.Entry{
			Key: key,
			Workout: workouts.Workout{
				TotalTime:   600,
				TotalVolume: float64(1000 * (i + 1)),
				Exercises:   []workouts.LoggedExercise{loggedExercise("row", "Back", nil, logged(10, 100))},
			},
		}))
	}

	history, err := repo.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 5)
	assert.Equal(t, 3000.0, history[keys[2]].TotalVolume)

	page, total, err := repo.List(ctx, workouts.ListParams{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, keys[4], page[0].Key)
	assert.Equal(t, keys[3], page[1].Key)

	from := base.Add(24 * time.Hour)
	to := base.Add(3 * 24 * time.Hour)
	ranged, err := repo.Range(ctx, &from, &to)
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, keys[1], ranged[0].Key)
	assert.Equal(t, keys[2], ranged[1].Key)

	all, err := repo.Range(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
