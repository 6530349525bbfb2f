package fairing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kwcargobay/fairing-go/pkg/fairing"
	"github.com/kwcargobay/fairing-go/pkg/fairing/mocks"
)

func TestControllerWithMockHost(t *testing.T) {
	v := buildStack(t)
	host := mocks.NewMockHost(t)

	var fired func()
	cancelled := false
	host.EXPECT().Parts().Return(v.Parts()).Once()
	host.EXPECT().OnDecoupled("fairing", mock.Anything).
		RunAndReturn(func(_ string, fn func()) func() {
			fired = fn
			return func() { cancelled = true }
		}).Once()

	c, err := fairing.NewController(v.Part("fairing"), host, testConfig())
	require.NoError(t, err)
	require.NoError(t, c.Start())
	require.NotNil(t, fired)
	assert.True(t, c.IsShielding())

	fired()

	assert.True(t, cancelled)
	assert.Equal(t, fairing.StateIdle, c.State())
	assert.Empty(t, shieldedIDs(v))
}

func TestControllerMockHostNotSubscribedWhenIdle(t *testing.T) {
	v := buildStack(t)
	host := mocks.NewMockHost(t)

	cfg := testConfig()
	cfg.DecouplerNode = "missing"
	c, err := fairing.NewController(v.Part("fairing"), host, cfg)
	require.NoError(t, err)

	// No expectations: the host must not be touched.
	require.NoError(t, c.Start())
	assert.Equal(t, fairing.StateIdle, c.State())
}
