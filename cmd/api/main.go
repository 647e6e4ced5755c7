package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	apiAdvisor "github.com/arayasuryanto/tools-simulasikelayakan/pkg/api/advisor"
	apiAppraisal "github.com/arayasuryanto/tools-simulasikelayakan/pkg/api/appraisal"
	apiConfig "github.com/arayasuryanto/tools-simulasikelayakan/pkg/api/config"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/api/monitor"
	apiProjects "github.com/arayasuryanto/tools-simulasikelayakan/pkg/api/projects"
	coreAdvisor "github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/advisor"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/config"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load("config/app.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Config load failed: %v\n", err)
		fmt.Println("  Falling back to defaults")
		cfg = config.Default()
	}

	// Route calc edge cases into the log and the metrics registry
	monitor.InstallDiagnostics()

	// Database is optional; persistence endpoints answer 503 without it
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if os.Getenv("DATABASE_URL") == "" {
		fmt.Println("[STORE] DATABASE_URL not set, persistence disabled")
	} else if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[WARNING] Database init failed: %v\n", err)
	} else if err := store.EnsureSchema(ctx); err != nil {
		fmt.Printf("[WARNING] Schema init failed: %v\n", err)
	} else {
		fmt.Println("[STORE] Database connected")
		defer store.Close()
	}

	// Cache: Redis when configured and reachable, in-process map otherwise
	var cache store.CacheRepository = store.NewMemoryCache()
	if cfg.Cache.RedisAddr != "" {
		redis := store.NewRedisCache(cfg.Cache.RedisAddr, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)
		if err := redis.Ping(ctx); err != nil {
			fmt.Printf("[WARNING] Redis unreachable at %s, using memory cache: %v\n", cfg.Cache.RedisAddr, err)
		} else {
			fmt.Printf("[CACHE] Redis connected at %s\n", cfg.Cache.RedisAddr)
			cache = redis
		}
	}

	advisor := coreAdvisor.New()
	if cfg.Advisor.Model != "" && advisor.Enabled() {
		advisor.SetModel(cfg.Advisor.Model)
	}

	// Appraisal endpoints
	apiAppraisal.InitHandler(cache, cfg.Appraisal.DefaultVariationPercent)
	http.HandleFunc("/api/appraisal/evaluate", apiAppraisal.HandleEvaluate)
	http.HandleFunc("/api/appraisal/sensitivity", apiAppraisal.HandleSensitivity)
	http.HandleFunc("/api/appraisal/report", apiAppraisal.HandleReport)
	http.HandleFunc("/api/appraisal/export", apiAppraisal.HandleExport)

	// Project persistence endpoints
	projectsHandler := apiProjects.NewHandler(store.NewProjectRepo())
	http.HandleFunc("/api/projects/save", projectsHandler.HandleSave)
	http.HandleFunc("/api/projects/load", projectsHandler.HandleLoad)
	http.HandleFunc("/api/projects/list", projectsHandler.HandleList)

	// Advisor endpoints
	advisorHandler := apiAdvisor.NewHandler(advisor)
	http.HandleFunc("/api/advisor/commentary", advisorHandler.HandleCommentary)

	// Config endpoints
	configHandler := apiConfig.NewHandler(cfg, advisor)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/advisor", configHandler.HandleAdvisorSwitch)

	// Prometheus scrape endpoint
	http.Handle("/metrics", monitor.Handler())

	fmt.Printf("API server starting on %s...\n", cfg.Server.Addr())
	fmt.Println("  - POST /api/appraisal/evaluate")
	fmt.Println("  - POST /api/appraisal/sensitivity")
	fmt.Println("  - POST /api/appraisal/report")
	fmt.Println("  - POST /api/appraisal/export")
	fmt.Println("  - POST /api/projects/save")
	fmt.Println("  - GET  /api/projects/load")
	fmt.Println("  - GET  /api/projects/list")
	fmt.Println("  - POST /api/advisor/commentary")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/advisor")
	fmt.Println("  - GET  /metrics")

	// Exit with code 1 if the listener fails (e.g. port in use)
	if err := http.ListenAndServe(cfg.Server.Addr(), nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
