package cmd

import (
	"strconv"
	"strings"
	"time"

	"orderintegration/internal/adapters/out/erp"
	"orderintegration/internal/pkg/errs"
)

// Config holds the raw environment settings of the service. Values are kept
// as read; typed views are derived through the accessor methods.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	APIKey     string

	ErpSimulationMode string
	ErpFailureRate    string
	ErpMinLatencyMs   string
	ErpMaxLatencyMs   string
	ErpForceFail      string
	ErpForceSucceed   string

	StaleAttemptThresholdMinutes string
}

// ErpSimulatorConfig parses the ERP simulator settings. Empty values fall
// back to a random mode with a 10% failure rate and 100..500ms latency.
func (c Config) ErpSimulatorConfig() (erp.Config, error) {
	config := erp.Config{
		Mode:         erp.RandomOutcome,
		FailureRate:  0.1,
		MinLatency:   100 * time.Millisecond,
		MaxLatency:   500 * time.Millisecond,
		ForceFail:    splitList(c.ErpForceFail),
		ForceSucceed: splitList(c.ErpForceSucceed),
	}

	if c.ErpSimulationMode != "" {
		mode, err := erp.ParseMode(c.ErpSimulationMode)
		if err != nil {
			return erp.Config{}, err
		}
		config.Mode = mode
	}

	if c.ErpFailureRate != "" {
		rate, err := strconv.ParseFloat(c.ErpFailureRate, 64)
		if err != nil || rate < 0 || rate > 1 {
			return erp.Config{}, errs.NewValueIsInvalidErrorWithCause("ERP_FAILURE_RATE", err)
		}
		config.FailureRate = rate
	}

	minLatency, err := parseLatency(c.ErpMinLatencyMs, "ERP_MIN_LATENCY_MS")
	if err != nil {
		return erp.Config{}, err
	}
	if minLatency > 0 {
		config.MinLatency = minLatency
	}

	maxLatency, err := parseLatency(c.ErpMaxLatencyMs, "ERP_MAX_LATENCY_MS")
	if err != nil {
		return erp.Config{}, err
	}
	if maxLatency > 0 {
		config.MaxLatency = maxLatency
	}

	if config.MaxLatency < config.MinLatency {
		return erp.Config{}, errs.NewValueIsInvalidError("ERP_MAX_LATENCY_MS")
	}

	return config, nil
}

// StaleAttemptThreshold parses the staleness threshold for the attempt
// monitor job. Defaults to 30 minutes.
func (c Config) StaleAttemptThreshold() (time.Duration, error) {
	if c.StaleAttemptThresholdMinutes == "" {
		return 30 * time.Minute, nil
	}

	minutes, err := strconv.Atoi(c.StaleAttemptThresholdMinutes)
	if err != nil || minutes < 1 {
		return 0, errs.NewValueIsInvalidErrorWithCause("STALE_ATTEMPT_THRESHOLD_MINUTES", err)
	}
	return time.Duration(minutes) * time.Minute, nil
}

func parseLatency(raw, name string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}

	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
