package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	docs "github.com/adilzhan/studentlife-auth/docs"
	"github.com/adilzhan/studentlife-auth/internal/config"
	api "github.com/adilzhan/studentlife-auth/internal/http"
	applog "github.com/adilzhan/studentlife-auth/internal/log"
	"github.com/adilzhan/studentlife-auth/internal/metrics"
	"github.com/adilzhan/studentlife-auth/internal/oauth"
	"github.com/adilzhan/studentlife-auth/internal/queue"
	"github.com/adilzhan/studentlife-auth/internal/repo"
	"github.com/adilzhan/studentlife-auth/internal/session"
)

// @title StudentLife Auth API
// @version 0.1.0
// @description Google sign-in, user records and browser sessions for StudentLife.
// @schemes http https
// @BasePath /
func main() {
	cfg := config.Load()

	if _, err := applog.Init(cfg.Env == "prod"); err != nil {
		log.Fatalf("log init: %v", err)
	}
	defer applog.L.Sync()

	if cfg.DDEnabled {
		tracer.Start(tracer.WithService("studentlife-auth"), tracer.WithEnv(cfg.Env))
		defer tracer.Stop()
	}

	metrics.MustRegister()
	docs.SwaggerInfo.BasePath = "/"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer store.Close(context.Background())

	if err := store.EnsureUserIndexes(ctx); err != nil {
		log.Fatalf("user indexes: %v", err)
	}

	var sessStore session.Store
	if cfg.RedisAddr != "" {
		rds := session.NewRedisStore(cfg.RedisAddr)
		if err := rds.Ping(ctx); err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer rds.Close()
		sessStore = rds
	} else {
		sessStore = session.NewMemoryStore()
	}
	sessions := session.NewManager(sessStore, time.Duration(cfg.SessionTTLHours)*time.Hour)

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		p, err := queue.NewRabbit(cfg.RabbitURL, queue.Exchange)
		if err != nil {
			log.Fatalf("rabbit connect: %v", err)
		}
		pub = p
	}
	defer pub.Close()

	google := oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleSecret, cfg.GoogleRedirect, cfg.SessionSecret)

	h := api.NewHandler(store, sessions, google, pub, cfg.StaticDir, cfg.RateLimitPerMin)
	r := api.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	log.Printf("studentlife-auth listening on :%s", cfg.Port)

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("signal: %s, shutting down", s)
	case err := <-srvErr:
		log.Printf("server error: %v", err)
	}
}
