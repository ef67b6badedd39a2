package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/dyluth/axero/internal/config"
	"github.com/dyluth/axero/internal/simulator"
	"github.com/dyluth/axero/pkg/workspace"
	"github.com/redis/go-redis/v9"
)

// Environment read at startup.
type Environment struct {
	InstanceName string `env:"AXERO_INSTANCE_NAME" envDefault:"default"`
	RedisURL     string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	ConfigPath   string `env:"AXERO_CONFIG" envDefault:"axero.yml"`
	HealthAddr   string `env:"AXERO_HEALTH_ADDR" envDefault:":8080"`
}

func main() {
	// 1. Load environment variables
	var e Environment
	if err := env.Parse(&e); err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse env: %v\n", err)
		os.Exit(1)
	}

	// 2. Parse Redis URL
	redisOpts, err := redis.ParseURL(e.RedisURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid REDIS_URL: %v\n", err)
		os.Exit(1)
	}

	// 3. Create workspace client
	client, err := workspace.NewClient(redisOpts, e.InstanceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to create workspace client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	// 4. Verify Redis connectivity
	if err := client.Ping(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Redis not accessible: %v\n", err)
		os.Exit(1)
	}

	// 5. Load axero.yml, or run with defaults when it is absent
	cfg, err := config.LoadOrDefault(e.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load %s: %v\n", e.ConfigPath, err)
		os.Exit(1)
	}

	engine, err := simulator.NewEngine(client, cfg, simulator.Options{HealthAddr: e.HealthAddr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Simulator starting for instance '%s' with %d employees\n", e.InstanceName, len(cfg.Roster.Employees))

	// 6. Setup graceful shutdown
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	errCh := make(chan error, 1)
	go func() {
		errCh <- engine.Run(runCtx)
	}()

	select {
	case sig := <-sigCh:
		fmt.Printf("Received signal %v, shutting down gracefully...\n", sig)
		cancel()
		<-errCh
	case runErr := <-errCh:
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Simulator error: %v\n", runErr)
			os.Exit(1)
		}
	}

	fmt.Println("Simulator stopped")
}
