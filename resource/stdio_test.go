package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbrx/dbrxerr"
)

func TestAcquireStdioRejectsContendedAcquisition(t *testing.T) {
	require.NoError(t, AcquireStdio(Stdout))
	defer ReleaseStdio(Stdout)

	err := AcquireStdio(Stdout)
	require.Error(t, err)
	assert.True(t, dbrxerr.Is(err, dbrxerr.Resource))
}

func TestReleaseStdioAllowsReacquisition(t *testing.T) {
	require.NoError(t, AcquireStdio(Stdin))
	ReleaseStdio(Stdin)
	assert.NoError(t, AcquireStdio(Stdin))
	ReleaseStdio(Stdin)
}

func TestStdinAndStdoutAreIndependentOwners(t *testing.T) {
	require.NoError(t, AcquireStdio(Stdin))
	defer ReleaseStdio(Stdin)

	assert.NoError(t, AcquireStdio(Stdout))
	ReleaseStdio(Stdout)
}
