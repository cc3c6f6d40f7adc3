package erp_test

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"orderintegration/internal/adapters/out/erp"
	"orderintegration/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimulator(t *testing.T, config erp.Config) *erp.Simulator {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return erp.NewSimulator(config, logger)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected erp.Mode
		wantErr  bool
	}{
		{name: "always succeed", input: "AlwaysSucceed", expected: erp.AlwaysSucceed},
		{name: "always fail", input: "alwaysfail", expected: erp.AlwaysFail},
		{name: "random", input: "Random", expected: erp.RandomOutcome},
		{name: "unknown name", input: "Sometimes", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := erp.ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Equal(t, erp.UnknownMode, mode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func TestSimulator_Send_AlwaysSucceed(t *testing.T) {
	simulator := newSimulator(t, erp.Config{Mode: erp.AlwaysSucceed})

	result, err := simulator.Send(context.Background(), "ORD-1001", []byte(`{}`))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Message)
	assert.Regexp(t, regexp.MustCompile(`^ERP-\d{8}-\d{5}$`), result.ErpReference)
}

func TestSimulator_Send_AlwaysFail(t *testing.T) {
	simulator := newSimulator(t, erp.Config{Mode: erp.AlwaysFail})

	result, err := simulator.Send(context.Background(), "ORD-1001", []byte(`{}`))
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
	assert.Empty(t, result.ErpReference)
}

func TestSimulator_Send_RandomRates(t *testing.T) {
	t.Run("zero failure rate always succeeds", func(t *testing.T) {
		simulator := newSimulator(t, erp.Config{Mode: erp.RandomOutcome, FailureRate: 0})

		for i := 0; i < 20; i++ {
			result, err := simulator.Send(context.Background(), "ORD-1001", []byte(`{}`))
			require.NoError(t, err)
			assert.True(t, result.Success)
		}
	})

	t.Run("full failure rate always fails", func(t *testing.T) {
		simulator := newSimulator(t, erp.Config{Mode: erp.RandomOutcome, FailureRate: 1})

		for i := 0; i < 20; i++ {
			result, err := simulator.Send(context.Background(), "ORD-1001", []byte(`{}`))
			require.NoError(t, err)
			assert.False(t, result.Success)
		}
	})
}

func TestSimulator_Send_ForceFail(t *testing.T) {
	simulator := newSimulator(t, erp.Config{
		Mode:      erp.AlwaysSucceed,
		ForceFail: []string{"FAIL"},
	})

	result, err := simulator.Send(context.Background(), "ORD-fail-7", []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestSimulator_Send_ForceSucceed(t *testing.T) {
	simulator := newSimulator(t, erp.Config{
		Mode:         erp.AlwaysFail,
		ForceSucceed: []string{"vip"},
	})

	result, err := simulator.Send(context.Background(), "ORD-VIP-42", []byte(`{}`))
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestSimulator_Send_ForceFailWinsOverForceSucceed(t *testing.T) {
	simulator := newSimulator(t, erp.Config{
		Mode:         erp.AlwaysSucceed,
		ForceFail:    []string{"ORD"},
		ForceSucceed: []string{"ORD"},
	})

	result, err := simulator.Send(context.Background(), "ORD-1001", []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestSimulator_Send_ContextCancelled(t *testing.T) {
	simulator := newSimulator(t, erp.Config{
		Mode:       erp.AlwaysSucceed,
		MinLatency: time.Second,
		MaxLatency: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := simulator.Send(ctx, "ORD-1001", []byte(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
