// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"time"

	"github.com/caarlos0/env"

	"github.com/AccelByte/extend-team-matcher/pkg/constants"
)

type Config struct {
	MinCompatibilityScore float64 `env:"MIN_COMPATIBILITY_SCORE"  envDefault:"0"          envDocs:"minimum total score of a recommendation (0 means use default from code)"`
	MaxRankedResults      int     `env:"MAX_RANKED_RESULTS"       envDefault:"0"          envDocs:"max number of ranked results (0 means use default from code)"`
	ScoringWorkers        int     `env:"SCORING_WORKERS"          envDefault:"0"          envDocs:"number of goroutines scoring candidates in one call (0 means use default from code)"`
	RequestTTLSecond      int     `env:"REQUEST_TTL_SECOND"       envDefault:"0"          envDocs:"age after which a match request is expired (0 means use default from code)"`
	ResultCacheTTLSecond  int     `env:"RESULT_CACHE_TTL_SECOND"  envDefault:"0"          envDocs:"ttl of cached ranked results (0 means use default from code, negative disables cache)"`
	AutoMatchMaxGroups    int     `env:"AUTO_MATCH_MAX_GROUPS"    envDefault:"0"          envDocs:"default max groups of one auto-match run (0 means use default from code)"`
	AutoMatchGroupSize    int     `env:"AUTO_MATCH_GROUP_SIZE"    envDefault:"0"          envDocs:"default group size of one auto-match run (0 means use default from code)"`
	HTTPAddress           string  `env:"HTTP_ADDRESS"             envDefault:":8080"      envDocs:"address of the http server"`
	ZipkinEndpoint        string  `env:"ZIPKIN_ENDPOINT"          envDefault:""           envDocs:"zipkin collector url, tracing is not exported when empty"`
	ServiceName           string  `env:"SERVICE_NAME"             envDefault:"team-matcher" envDocs:"service name reported in traces"`
	LogLevel              string  `env:"LOG_LEVEL"                envDefault:"info"       envDocs:"logrus level"`
	SnapshotPath          string  `env:"SNAPSHOT_PATH"            envDefault:""           envDocs:"json file with teams and requests loaded into the in-memory repository"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) GetMinCompatibilityScore() float64 {
	if c.MinCompatibilityScore > 0 {
		return c.MinCompatibilityScore
	}
	return constants.MinCompatibilityScore
}

func (c *Config) GetMaxRankedResults() int {
	if c.MaxRankedResults > 0 {
		return c.MaxRankedResults
	}
	return constants.MaxRankedResults
}

func (c *Config) GetScoringWorkers() int {
	if c.ScoringWorkers > 0 {
		return c.ScoringWorkers
	}
	return constants.DefaultScoringWorkers
}

func (c *Config) GetRequestTTL() time.Duration {
	if c.RequestTTLSecond > 0 {
		return time.Duration(c.RequestTTLSecond) * time.Second
	}
	return constants.DefaultRequestTTL
}

// GetResultCacheTTL returns 0 when caching is disabled.
func (c *Config) GetResultCacheTTL() time.Duration {
	if c.ResultCacheTTLSecond < 0 {
		return 0
	}
	if c.ResultCacheTTLSecond > 0 {
		return time.Duration(c.ResultCacheTTLSecond) * time.Second
	}
	return constants.DefaultResultCacheTTL
}

func (c *Config) GetAutoMatchMaxGroups() int {
	if c.AutoMatchMaxGroups > 0 {
		return c.AutoMatchMaxGroups
	}
	return constants.DefaultAutoMatchMaxGroups
}

func (c *Config) GetAutoMatchGroupSize() int {
	if c.AutoMatchGroupSize > 0 {
		return c.AutoMatchGroupSize
	}
	return constants.DefaultAutoMatchGroupSize
}
