package rod

import (
	"testing"

	"github.com/fwojciec/web2adoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStatus(t *testing.T) {
	t.Parallel()

	require.NoError(t, checkStatus(200, "https://example.com/"))
	require.NoError(t, checkStatus(203, "https://example.com/"))

	err := checkStatus(404, "https://example.com/gone")
	require.Error(t, err)
	assert.Equal(t, web2adoc.ENOTFOUND, web2adoc.ErrorCode(err))

	err = checkStatus(503, "https://example.com/")
	require.Error(t, err)
	assert.Equal(t, web2adoc.EINTERNAL, web2adoc.ErrorCode(err))
	assert.Contains(t, err.Error(), "HTTP 503")

	// No document response was seen.
	require.Error(t, checkStatus(0, "https://example.com/"))
}
