package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/axero/internal/config"
	"github.com/dyluth/axero/internal/kv"
	"github.com/dyluth/axero/internal/kv/sqlitekv"
	"github.com/dyluth/axero/internal/printer"
	"github.com/dyluth/axero/pkg/workspace"
	"github.com/redis/go-redis/v9"
)

const (
	storeLocal = "local"
	storeRedis = "redis"
)

// Global flags shared by every subcommand.
var (
	storeBackend string
	dbPath       string
	redisURL     string
	instanceName string
	configPath   string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&storeBackend, "store", storeLocal, "Where settings and widget order live: local or redis")
	flags.StringVar(&dbPath, "db", defaultDBPath(), "SQLite file used by --store=local")
	flags.StringVar(&redisURL, "redis", envOr("REDIS_URL", "redis://localhost:6379"), "Redis URL for --store=redis, the feed and the roster")
	flags.StringVarP(&instanceName, "name", "n", envOr("AXERO_INSTANCE_NAME", "default"), "Instance namespace in Redis")
	flags.StringVar(&configPath, "config", config.DefaultPath, "Path to axero.yml (optional)")
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".axero", "state.db")
	}
	return filepath.Join(home, ".axero", "state.db")
}

// session is an opened store plus, for --store=redis, the Redis client
// behind it.
type session struct {
	store  kv.Store
	client *workspace.Client
	close  func() error
}

func (s *session) Close() error {
	return s.close()
}

// openSession opens the store selected by --store.
func openSession(ctx context.Context) (*session, error) {
	switch storeBackend {
	case storeLocal:
		st, err := sqlitekv.Open(dbPath)
		if err != nil {
			return nil, printer.ErrorWithContext(
				"failed to open local store",
				err.Error(),
				map[string]string{"path": dbPath},
				[]string{"Choose a writable location:\n  axero --db /path/to/state.db ..."},
			)
		}
		return &session{store: st, close: st.Close}, nil

	case storeRedis:
		client, err := connectRedis(ctx)
		if err != nil {
			return nil, err
		}
		return &session{store: kv.NewRedis(client), client: client, close: client.Close}, nil

	default:
		return nil, printer.Error(
			"invalid store backend",
			fmt.Sprintf("Unknown store: %s", storeBackend),
			[]string{"Valid stores: local, redis"},
		)
	}
}

// connectRedis connects to --redis under the --name namespace and verifies
// the connection.
func connectRedis(ctx context.Context) (*workspace.Client, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, printer.Error(
			"invalid Redis URL",
			fmt.Sprintf("Could not parse %q: %v", redisURL, err),
			[]string{"Use a URL like:\n  redis://localhost:6379/0"},
		)
	}

	client, err := workspace.NewClient(redisOpts, instanceName)
	if err != nil {
		return nil, printer.Error("invalid instance name", err.Error(), []string{"Pass a name:\n  axero --name dev ..."})
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", redisURL),
			map[string]string{"instance": instanceName, "error": err.Error()},
			[]string{
				"Start Redis locally:\n  docker run -p 6379:6379 redis:7",
				"Point at another server:\n  axero --redis redis://host:6379 ...",
			},
		)
	}

	return client, nil
}

// loadConfig reads --config, falling back to defaults when the file is absent.
func loadConfig() (*config.AxeroConfig, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"invalid configuration",
			err.Error(),
			map[string]string{"path": configPath},
			[]string{"Fix the file or remove it to use the defaults"},
		)
	}
	return cfg, nil
}
