// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package server exposes the team matcher over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/automatch"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/finder"
)

// AutoMatchDefaults are used when an auto-match call leaves max_groups or group_size out.
type AutoMatchDefaults struct {
	MaxGroups int
	GroupSize int
}

type Server struct {
	finder     *finder.Finder
	assembler  *automatch.Assembler
	repository matchmaker.CandidateRepository
	registry   *prometheus.Registry
	defaults   AutoMatchDefaults
}

func New(finder *finder.Finder, assembler *automatch.Assembler, repository matchmaker.CandidateRepository, registry *prometheus.Registry, defaults AutoMatchDefaults) *Server {
	return &Server{
		finder:     finder,
		assembler:  assembler,
		repository: repository,
		registry:   registry,
		defaults:   defaults,
	}
}

// Router returns the gin engine serving every route.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})))

	match := router.Group("/match")
	match.POST("/find-teams", s.findTeams)
	match.POST("/find-teammates", s.findTeammates)
	match.POST("/auto", s.autoMatch)

	return router
}

// Handler is the router instrumented with otel spans.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.Router(), "team-matcher",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logrus.
			WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("status", c.Writer.Status()).
			WithField("latency", time.Since(start))
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("http request")
			return
		}
		entry.Debug("http request")
	}
}
