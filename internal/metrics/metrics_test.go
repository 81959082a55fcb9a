package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Records(t *testing.T) {
	t.Parallel()

	c := New()

	c.ConnectionOpened()
	c.ConnectionOpened()
	c.ConnectionClosed()
	c.QueryDuration("backend", 5*time.Millisecond)
	c.QueryError("58000")
	c.AuthFailure()

	families, err := c.Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}

	assert.True(t, names["pgproxy_connections_active"])
	assert.True(t, names["pgproxy_connections_total"])
	assert.True(t, names["pgproxy_query_duration_seconds"])
	assert.True(t, names["pgproxy_query_errors_total"])
	assert.True(t, names["pgproxy_auth_failures_total"])
}
