package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calllog/internal/calls"
	"calllog/internal/config"
	"calllog/internal/log"
	"calllog/internal/server"
	"calllog/internal/signup"
	"calllog/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	configFile string
	migrate    bool
	seed       bool
)

func main() {
	// .env is optional; real environment variables take precedence
	godotenv.Load()
	cfg = config.FromEnv()

	rootCmd := &cobra.Command{
		Use:               "calllog",
		Short:             "Call-log and signup REST API",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		RunE:              runServe,
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "YAML config file")
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flags.StringVar(&cfg.Driver, "driver", cfg.Driver, "database driver: sqlite, mysql or postgres")
	flags.StringVar(&cfg.DSN, "dsn", cfg.DSN, "database data source name")
	flags.StringVarP(&cfg.Debug, "debug", "d", cfg.Debug, fmt.Sprintf("comma separated list of %v", log.DebugLevelStrings))
	rootCmd.Flags().BoolVar(&migrate, "migrate", true, "create tables before serving")
	rootCmd.Flags().BoolVar(&seed, "seed", false, "insert sample calls if the table is empty")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the calls and login tables",
		RunE:  runMigrate,
	}, &cobra.Command{
		Use:   "seed",
		Short: "Insert sample calls if the calls table is empty",
		RunE:  runSeed,
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.FatalLog("calllog failed", "err", err)
	}
	log.Sync()
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		file, err := config.LoadFile(configFile)
		if err != nil {
			return err
		}
		cfg.Overlay(file, cmd.Flags())
	}
	log.SetDebugLevelStrs(cfg.Debug)
	return nil
}

func openStore(ctx context.Context, withSchema bool) (*store.DB, error) {
	db, err := store.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if withSchema {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}

func seedIfEmpty(ctx context.Context, svc *calls.Service) error {
	n, err := svc.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.InfoLog("calls table not empty, skipping seed", "count", n)
		return nil
	}
	log.InfoLog("seeding database with sample data")
	if err := svc.SeedData(ctx); err != nil {
		return err
	}
	log.InfoLog("seed complete")
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := openStore(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer db.Close()
	log.InfoLog("migration complete", "driver", cfg.Driver)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	db, err := openStore(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer db.Close()
	return seedIfEmpty(cmd.Context(), calls.NewService(db))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, err := openStore(ctx, migrate)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		log.WarnLog("database not reachable yet", "driver", cfg.Driver, "err", err)
	}

	callSvc := calls.NewService(db)
	if seed {
		if err := seedIfEmpty(ctx, callSvc); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	srv := server.New(callSvc, signup.NewService(db), db)

	// ── Graceful shutdown ──────────────────────────────────────────────────
	done := make(chan struct{})
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		log.InfoLog("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.WarnLog("shutdown error", "err", err)
		}
		close(done)
	}()

	log.InfoLog("calllog listening", "addr", cfg.Addr, "driver", cfg.Driver)
	if err := srv.Start(cfg.Addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen: %w", err)
	}
	<-done
	log.InfoLog("server stopped")
	return nil
}
