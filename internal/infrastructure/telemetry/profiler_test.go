package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop(), "second stop is a no-op")
}

func TestNewProfiler_RequiresServerAndName(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "fee-engine"}, zap.NewNop())
	assert.ErrorContains(t, err, "server address")

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://pyroscope:4040"}, zap.NewNop())
	assert.ErrorContains(t, err, "application name")
}

func TestProfiler_NilSafe(t *testing.T) {
	var p *Profiler
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
}

func TestProfilerConfig_ProfileTypes(t *testing.T) {
	assert.Empty(t, ProfilerConfig{}.profileTypes())
	assert.Len(t, ProfilerConfig{ProfileCPU: true, ProfileAlloc: true, ProfileMutex: true}.profileTypes(), 5)
}

func TestProviders_EnableSpanProfilesWithoutTracing(t *testing.T) {
	p, err := Setup(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.NotPanics(t, func() { p.EnableSpanProfiles(zap.NewNop()) })
}

func TestWithProfilingLabels(t *testing.T) {
	var route, tenant, user string
	WithProfilingLabels(context.Background(), map[string]string{
		ProfilingLabelRoute:  "/api/v1/fee-plans/:id",
		"Tenant-ID":          "t-1",
		"user_id":            "u-1",
		ProfilingLabelMethod: "",
	}, func(ctx context.Context) {
		route, _ = pprof.Label(ctx, ProfilingLabelRoute)
		tenant, _ = pprof.Label(ctx, ProfilingLabelTenantID)
		user, _ = pprof.Label(ctx, "user_id")
	})

	assert.Equal(t, "/api/v1/fee-plans/:id", route)
	assert.Equal(t, "t-1", tenant, "keys are normalised to snake_case")
	assert.Empty(t, user, "high-cardinality keys are dropped")
}

func TestWithProfilingLabels_NoLabelsRunsFn(t *testing.T) {
	ran := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { ran = true })
	assert.True(t, ran)
}

func TestSanitizeLabels(t *testing.T) {
	long := strings.Repeat("x", MaxLabelValueLength+10)
	pairs := sanitizeLabels(OperationLabels("termsheet_close_sweep", map[string]string{"route": long}))

	require.Len(t, pairs, 4)
	assert.Equal(t, []string{"operation", "termsheet_close_sweep", "route"}, pairs[:3])
	assert.Len(t, pairs[3], MaxLabelValueLength)
}
