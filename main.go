package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"timetracker/pkg/config"
	"timetracker/pkg/database"
	"timetracker/pkg/events"
	"timetracker/pkg/timeentry"
	"timetracker/process/importer"
	"timetracker/process/summary"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	// `./timetracker migrate` runs AutoMigrate and exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		fmt.Println("migration completed")
		return
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Printf("migration warning (time_entries): %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, db); err != nil {
		log.Fatalf("server: %v", err)
	}
	log.Println("shutdown complete")
}

func run(ctx context.Context, cfg config.Config, db *gorm.DB) error {
	opts := []timeentry.Option{}
	if len(cfg.Projects) > 0 {
		opts = append(opts, timeentry.WithProjects(cfg.Projects))
	}
	if len(cfg.KafkaBrokers) > 0 {
		pub := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer pub.Close()
		opts = append(opts, timeentry.WithPublisher(pub))
		log.Printf("publishing entry events to %s on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	}
	svc := timeentry.NewService(timeentry.NewGormStore(db), opts...)

	if cfg.ImportDir != "" {
		go func() {
			if err := importer.Watch(ctx, cfg.ImportDir, svc); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("importer stopped: %v", err)
			}
		}()
	}
	if cfg.SummaryCron != "" {
		sched, err := summary.NewScheduler(cfg.SummaryCron, svc)
		if err != nil {
			return fmt.Errorf("summary schedule: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	r := gin.Default()
	setupRoutes(r, &server{
		svc:       svc,
		db:        db,
		origin:    cfg.CORSOrigin,
		jwtSecret: []byte(cfg.JWTSecret),
	})

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server is running on http://localhost%s", cfg.Addr())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
