// Package main runs the RepCoach MCP server over stdio, for local AI clients.
// The same server is mounted on the main backend at /mcp.
package main

import (
	"context"
	"flag"
	"net"
	"os"

	"github.com/mfarag11047/RepCoach/internal"
	"github.com/mfarag11047/RepCoach/internal/config"
	"github.com/mfarag11047/RepCoach/internal/db"
	repcoachmcp "github.com/mfarag11047/RepCoach/internal/mcp"
	"github.com/mfarag11047/RepCoach/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout belongs to the MCP transport
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("REPCOACH_POSTGRES_PASS"),
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("REPCOACH_REDIS_PASS"),
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis: %s", err)
		}
	}()

	// metrics are not exported from the stdio server
	metricsManager := metrics.NewManager("repcoach", "mcp_stdio", prometheus.NewRegistry())
	services := internal.NewServices(cfg, dbPool, rdb, metricsManager)
	server := repcoachmcp.NewServer(services.MCPContext())

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
