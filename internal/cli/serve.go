package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timetable/pkg/cache"
	"github.com/matzehuels/timetable/pkg/observability"
	"github.com/matzehuels/timetable/pkg/pipeline"
	"github.com/matzehuels/timetable/pkg/server"
)

// Environment variables used as serve flag defaults.
const (
	envAddr     = "TIMETABLE_ADDR"
	envRedisURL = "TIMETABLE_REDIS_URL"
	envMongoURI = "TIMETABLE_MONGO_URI"
)

// serverKeyPrefix scopes server cache keys in shared stores.
const serverKeyPrefix = "timetable:"

type serveFlags struct {
	addr    string
	redis   string
	mongo   string
	mongoDB string
	maxBody int64
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var sf serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Start an HTTP server exposing:

  POST /render   render uploaded timetables (multipart "file" fields or a raw body)
  POST /lint     report warnings as JSON
  GET  /healthz  liveness probe

Rendered artifacts are cached in Redis when --redis is set, otherwise in
MongoDB when --mongo is set, otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), sf)
		},
	}

	cmd.Flags().StringVar(&sf.addr, "addr", envOr(envAddr, server.DefaultAddr), "listen address ($"+envAddr+")")
	cmd.Flags().StringVar(&sf.redis, "redis", os.Getenv(envRedisURL), "Redis URL for the artifact cache ($"+envRedisURL+")")
	cmd.Flags().StringVar(&sf.mongo, "mongo", os.Getenv(envMongoURI), "MongoDB URI for the artifact cache ($"+envMongoURI+")")
	cmd.Flags().StringVar(&sf.mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().Int64Var(&sf.maxBody, "max-body", server.DefaultMaxBody, "maximum request body in bytes")
	cmd.Flags().BoolVar(&sf.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, sf serveFlags) error {
	store, err := c.serverCache(ctx, sf)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, serverKeyPrefix), c.Logger)
	runner.TTL = cache.TTLServerArtifact
	defer runner.Close()

	observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))

	srv := server.New(runner, server.WithLogger(c.Logger), server.WithMaxBody(sf.maxBody))
	return srv.ListenAndServe(ctx, sf.addr)
}

// serverCache picks the artifact store: Redis, then MongoDB, then the
// local directory.
func (c *CLI) serverCache(ctx context.Context, sf serveFlags) (cache.Cache, error) {
	switch {
	case sf.noCache:
		return cache.NewNullCache(), nil
	case sf.redis != "":
		rc, err := cache.NewRedisCache(ctx, sf.redis)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	case sf.mongo != "":
		mc, err := cache.NewMongoCache(ctx, sf.mongo, sf.mongoDB)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using mongo cache", "database", sf.mongoDB)
		return mc, nil
	default:
		return c.newCache(false), nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
