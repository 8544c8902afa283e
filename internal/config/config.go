package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	HTTPTimeout        time.Duration
	LogLevel           slog.Level
	AllowedOrigins     []string
	CostTablePath      string
	RevealDelay        time.Duration
	SubmissionCapacity int
	Webhook            Webhook
	Estimation         Estimation
}

type Webhook struct {
	URL     string
	Secret  string
	Format  string // form | json
	Retries int
	Workers int
	Queue   int
}

// Estimation holds the tunable constants of the funnel estimator. Revisions of
// the calculator disagreed on several of them, so they are configurable.
type Estimation struct {
	LeadsPerUnit     float64
	QualifiedRatio   float64
	SiteVisitRatio   float64
	ChannelCPLOffset float64
	MinCPL           int64
	FloorBump        int64
	CPQLMode         string // budget | cpl
	CPQLDivisor      float64
	SeriesModel      string // growth | linear | jitter
	SeriesExponent   float64
	ScaleCPLByLaunch bool
}

func DefaultEstimation() Estimation {
	return Estimation{
		LeadsPerUnit:     167,
		QualifiedRatio:   0.3,
		SiteVisitRatio:   0.27,
		ChannelCPLOffset: 257,
		MinCPL:           300,
		FloorBump:        200,
		CPQLMode:         "budget",
		CPQLDivisor:      0.22,
		SeriesModel:      "growth",
		SeriesExponent:   0.7,
		ScaleCPLByLaunch: true,
	}
}

// LoadDotEnv populates the environment from .env files. A missing file is
// not an error; a malformed one is.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

func FromEnv() Config {
	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	est := DefaultEstimation()
	est.QualifiedRatio = envFloat("QUALIFIED_RATIO", est.QualifiedRatio)
	est.SiteVisitRatio = envFloat("SITE_VISIT_RATIO", est.SiteVisitRatio)
	est.CPQLMode = strings.ToLower(envOr("CPQL_MODE", est.CPQLMode))
	est.SeriesModel = strings.ToLower(envOr("SERIES_MODEL", est.SeriesModel))
	est.ScaleCPLByLaunch = envBool("CPL_SCALE_BY_LAUNCH", est.ScaleCPLByLaunch)

	return Config{
		Port:               envOr("PORT", "8080"),
		HTTPTimeout:        to,
		LogLevel:           lvl,
		AllowedOrigins:     csv(envOr("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		CostTablePath:      os.Getenv("COST_TABLE_PATH"),
		RevealDelay:        time.Duration(envInt("REVEAL_DELAY_MS", 1500)) * time.Millisecond,
		SubmissionCapacity: envInt("SUBMISSION_CAPACITY", 10000),
		Webhook: Webhook{
			URL:     os.Getenv("WEBHOOK_URL"),
			Secret:  os.Getenv("WEBHOOK_SECRET"),
			Format:  strings.ToLower(envOr("WEBHOOK_FORMAT", "form")),
			Retries: envInt("WEBHOOK_RETRIES", 2),
			Workers: envInt("WEBHOOK_WORKERS", 4),
			Queue:   envInt("WEBHOOK_QUEUE", 256),
		},
		Estimation: est,
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func envFloat(k string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func csv(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
