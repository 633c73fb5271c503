package internal

import (
	"time"

	"github.com/mfarag11047/RepCoach/internal/config"
	"github.com/mfarag11047/RepCoach/internal/exercises"
	"github.com/mfarag11047/RepCoach/internal/mcp"
	"github.com/mfarag11047/RepCoach/internal/profile"
	"github.com/mfarag11047/RepCoach/internal/recovery"
	"github.com/mfarag11047/RepCoach/internal/telemetry/metrics"
	"github.com/mfarag11047/RepCoach/internal/workouts"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultRecoveryTimeBucket = time.Minute

// Services holds the domain services shared by the HTTP server and the stdio MCP server.
type Services struct {
	Exercises *exercises.Service
	Workouts  *workouts.Service
	Recovery  *recovery.Service
	Profiles  *profile.Repo

	dbPool *pgxpool.Pool
}

func NewServices(
	cfg *config.Config,
	dbPool *pgxpool.Pool,
	rdb *redis.Client,
	metricsManager *metrics.Manager,
) *Services {
	exercisesService := exercises.NewService(exercises.NewRepo(dbPool), metricsManager)
	workoutsService := workouts.NewService(workouts.NewRepo(dbPool), metricsManager)

	timeBucket := cfg.RecoveryCacheTimeBucket.Duration
	if timeBucket == 0 && cfg.RecoveryCacheSizeMB > 0 {
		timeBucket = defaultRecoveryTimeBucket
	}
	recoveryService := recovery.NewService(recovery.NewServiceParams{
		Engine:         recovery.NewEngine(recovery.DefaultHierarchy()),
		History:        workoutsService,
		Muscles:        exercisesService,
		MetricsManager: metricsManager,
		CacheSizeBytes: cfg.RecoveryCacheSizeMB * 1024 * 1024,
		TimeBucket:     timeBucket,
	})

	return &Services{
		Exercises: exercisesService,
		Workouts:  workoutsService,
		Recovery:  recoveryService,
		Profiles:  profile.NewRepo(rdb),
		dbPool:    dbPool,
	}
}

// MCPContext builds the data source of the MCP tools.
func (s *Services) MCPContext() *mcp.ContextService {
	return mcp.NewContextService(mcp.ContextServiceParams{
		Schema:    mcp.NewPoolSchemaRepo(s.dbPool),
		Recovery:  s.Recovery,
		Workouts:  s.Workouts,
		Exercises: s.Exercises,
		Profiles:  s.Profiles,
	})
}
