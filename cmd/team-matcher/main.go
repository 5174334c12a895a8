// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-team-matcher/pkg/cache"
	"github.com/AccelByte/extend-team-matcher/pkg/common"
	"github.com/AccelByte/extend-team-matcher/pkg/config"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/automatch"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/compatibility"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/finder"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/ranker"
	"github.com/AccelByte/extend-team-matcher/pkg/metrics"
	"github.com/AccelByte/extend-team-matcher/pkg/repository"
	"github.com/AccelByte/extend-team-matcher/pkg/server"
	"github.com/AccelByte/extend-team-matcher/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("unable to load config: %v", err)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	gin.SetMode(common.GetEnv("GIN_MODE", gin.ReleaseMode))

	shutdownTracing, err := tracing.Setup(cfg.ServiceName, cfg.ZipkinEndpoint)
	if err != nil {
		logrus.Fatalf("unable to setup tracing: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	matchmakingMetrics := metrics.NewMetrics(registry)

	memory := repository.NewMemoryRepository()
	if cfg.SnapshotPath != "" {
		if err := memory.LoadSnapshotFile(cfg.SnapshotPath); err != nil {
			logrus.Fatalf("unable to load snapshot: %v", err)
		}
	}

	calculator := compatibility.NewDefaultCalculator()
	teamRanker := ranker.New(calculator, matchmakingMetrics,
		ranker.WithMinScore(cfg.GetMinCompatibilityScore()),
		ranker.WithMaxResults(cfg.GetMaxRankedResults()),
		ranker.WithWorkers(cfg.GetScoringWorkers()),
	)

	finderOptions := []finder.Option{finder.WithRequestTTL(cfg.GetRequestTTL())}
	if ttl := cfg.GetResultCacheTTL(); ttl > 0 {
		finderOptions = append(finderOptions, finder.WithResultCache(cache.NewResultCache(ttl)))
	}
	teamFinder := finder.New(memory, teamRanker, matchmakingMetrics, finderOptions...)

	assembler := automatch.New(calculator, matchmakingMetrics,
		automatch.WithMinScore(cfg.GetMinCompatibilityScore()),
		automatch.WithWorkers(cfg.GetScoringWorkers()),
		automatch.WithRequestTTL(cfg.GetRequestTTL()),
	)

	srv := server.New(teamFinder, assembler, memory, registry, server.AutoMatchDefaults{
		MaxGroups: cfg.GetAutoMatchMaxGroups(),
		GroupSize: cfg.GetAutoMatchGroupSize(),
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logrus.Infof("team matcher listening on %s", cfg.HTTPAddress)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("http server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("unable to shutdown http server: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logrus.Errorf("unable to shutdown tracing: %v", err)
	}
}
