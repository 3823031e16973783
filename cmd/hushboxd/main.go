package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hushbox/hushbox/config"
	"github.com/hushbox/hushbox/internal/server"
	"github.com/hushbox/hushbox/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("config error:", err)
	}

	st := initStore(cfg)
	defer st.Close()

	router := server.SetupRouter(st, cfg)

	log.Printf("hushboxd starting on %s", cfg.Addr())
	log.Printf("store: %s", cfg.Store.Type)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Fatal(srv.ListenAndServe())
}

func initStore(cfg *config.Config) store.Store {
	switch cfg.Store.Type {
	case "redis":
		st, err := store.NewRedisStore(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		if err != nil {
			log.Fatal("redis connection failed:", err)
		}
		return st
	default:
		return store.NewMemoryStore(30 * time.Second)
	}
}
