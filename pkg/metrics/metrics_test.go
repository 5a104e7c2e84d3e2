package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })

	WizardSaves.WithLabelValues("resume", "saved").Inc()
	require.Equal(t, 1.0, testutil.ToFloat64(WizardSaves.WithLabelValues("resume", "saved")))

	// registering twice is a programming error
	require.Panics(t, func() { RegisterCollectors(reg) })
}
