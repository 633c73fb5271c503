package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mfarag11047/RepCoach/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

const (
	profileKey     = "repcoach-profile"
	preferencesKey = "repcoach-preferences"
)

// Repo keeps the single user profile and preferences as JSON documents in redis.
type Repo struct {
	redisClient *redis.Client
}

func NewRepo(redisClient *redis.Client) *Repo {
	return &Repo{
		redisClient: redisClient,
	}
}

func (r *Repo) Get(ctx context.Context) (_ *UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var p UserProfile
	if err := r.getJSON(ctx, profileKey, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Save(ctx context.Context, p UserProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.setJSON(ctx, profileKey, p)
}

// GetPreferences returns empty preferences when none were saved yet.
func (r *Repo) GetPreferences(ctx context.Context) (_ Preferences, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get_preferences")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var prefs Preferences
	if err := r.getJSON(ctx, preferencesKey, &prefs); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return Preferences{}.Normalize(), nil
		}
		return Preferences{}, err
	}
	return prefs.Normalize(), nil
}

func (r *Repo) SavePreferences(ctx context.Context, prefs Preferences) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.save_preferences")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.setJSON(ctx, preferencesKey, prefs.Normalize())
}

func (r *Repo) getJSON(ctx context.Context, key string, dest any) error {
	cmd := r.redisClient.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("get [%s]: %w", key, err)
	}
	if err := json.Unmarshal([]byte(cmd.Val()), dest); err != nil {
		return fmt.Errorf("unmarshal [%s]: %w", key, err)
	}
	return nil
}

func (r *Repo) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal [%s]: %w", key, err)
	}
	if err := r.redisClient.Set(ctx, key, string(data), 0).Err(); err != nil {
		return fmt.Errorf("set [%s]: %w", key, err)
	}
	return nil
}
