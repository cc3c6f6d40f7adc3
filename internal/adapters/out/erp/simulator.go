package erp

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"orderintegration/internal/core/ports"
	"orderintegration/internal/pkg/errs"
)

// Mode selects how the simulator decides the outcome of a send.
type Mode int

const (
	// UnknownMode represents an invalid or undefined simulation mode.
	UnknownMode Mode = iota

	// AlwaysSucceed accepts every order, except force-fail matches.
	AlwaysSucceed

	// AlwaysFail rejects every order, except force-succeed matches.
	AlwaysFail

	// RandomOutcome rejects orders with the configured failure rate.
	RandomOutcome
)

// getModeStrings returns a map of Mode values to their string representations.
func getModeStrings() map[Mode]string {
	return map[Mode]string{
		UnknownMode:   "Unknown",
		AlwaysSucceed: "AlwaysSucceed",
		AlwaysFail:    "AlwaysFail",
		RandomOutcome: "Random",
	}
}

// String returns the human-readable name of the mode.
// Returns "Unknown" for invalid values.
func (m Mode) String() string {
	if str, ok := getModeStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// ParseMode converts a simulation mode name into a Mode value.
// Matching is case-insensitive.
func ParseMode(name string) (Mode, error) {
	for mode, str := range getModeStrings() {
		if mode != UnknownMode && strings.EqualFold(str, name) {
			return mode, nil
		}
	}

	return UnknownMode, errs.NewValueIsInvalidErrorWithCause("simulation mode is invalid",
		fmt.Errorf("%q is not a valid simulation mode, valid modes: AlwaysSucceed, AlwaysFail, Random", name))
}

// Config tunes the simulated ERP behaviour.
type Config struct {
	// Mode selects the outcome strategy. Defaults to RandomOutcome.
	Mode Mode

	// FailureRate is the rejection probability in RandomOutcome mode,
	// between 0.0 and 1.0.
	FailureRate float64

	// MinLatency and MaxLatency bound the simulated network delay per send.
	MinLatency time.Duration
	MaxLatency time.Duration

	// ForceFail lists order-number substrings that are always rejected,
	// regardless of mode. Matching is case-insensitive.
	ForceFail []string

	// ForceSucceed lists order-number substrings that are always accepted,
	// regardless of mode. ForceFail wins when both match.
	ForceSucceed []string
}

// Simulator stands in for the external ERP system. It applies a configurable
// latency and decides acceptance per its mode, so failure handling can be
// exercised without a real ERP.
type Simulator struct {
	config Config
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator creates a simulated ERP sender. A zero mode falls back to
// RandomOutcome.
func NewSimulator(config Config, logger *slog.Logger) *Simulator {
	if config.Mode == UnknownMode {
		config.Mode = RandomOutcome
	}

	return &Simulator{
		config: config,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Send simulates delivering an order payload to the ERP. It sleeps for the
// configured latency, honouring context cancellation, then reports the ERP's
// acceptance decision. The payload itself is not inspected.
func (s *Simulator) Send(
	ctx context.Context,
	orderNumber string,
	_ []byte,
) (ports.ErpSendResult, error) {
	s.logger.Info("sending order to erp",
		"orderNumber", orderNumber,
		"mode", s.config.Mode.String())

	if err := s.sleepLatency(ctx); err != nil {
		return ports.ErpSendResult{}, err
	}

	if s.shouldFail(orderNumber) {
		message := s.failureMessage()
		s.logger.Warn("erp rejected order",
			"orderNumber", orderNumber,
			"message", message)

		return ports.ErpSendResult{
			Success: false,
			Message: message,
		}, nil
	}

	reference := s.newReference()
	s.logger.Info("erp accepted order",
		"orderNumber", orderNumber,
		"erpReference", reference)

	return ports.ErpSendResult{
		Success:      true,
		Message:      "Order received by the ERP.",
		ErpReference: reference,
	}, nil
}

func (s *Simulator) sleepLatency(ctx context.Context) error {
	delay := s.config.MinLatency
	if spread := s.config.MaxLatency - s.config.MinLatency; spread > 0 {
		s.mu.Lock()
		delay += time.Duration(s.rng.Int63n(int64(spread) + 1))
		s.mu.Unlock()
	}
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Simulator) shouldFail(orderNumber string) bool {
	if containsAnyFold(orderNumber, s.config.ForceFail) {
		return true
	}
	if containsAnyFold(orderNumber, s.config.ForceSucceed) {
		return false
	}

	switch s.config.Mode {
	case AlwaysSucceed:
		return false
	case AlwaysFail:
		return true
	default:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.rng.Float64() < s.config.FailureRate
	}
}

func (s *Simulator) failureMessage() string {
	messages := []string{
		"ERP temporarily unavailable. Please retry.",
		"Connection error reaching the ERP server.",
		"Timeout while the ERP processed the order.",
		"The ERP rejected the order on internal validation.",
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rng.Intn(len(messages))]
}

func (s *Simulator) newReference() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("ERP-%s-%05d", time.Now().UTC().Format("20060102"), 10000+s.rng.Intn(90000))
}

func containsAnyFold(value string, patterns []string) bool {
	lower := strings.ToLower(value)
	for _, pattern := range patterns {
		if pattern != "" && strings.Contains(lower, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}
