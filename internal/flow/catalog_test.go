package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 10)

	q, ok := c.Get("business-stage")
	require.True(t, ok)
	assert.Equal(t, 1, q.Priority)
	assert.Equal(t, []string{"years_in_business"}, q.Captures)
	require.Len(t, q.Suppress, 1)

	_, ok = c.Get("no-such-question")
	assert.False(t, ok)
}

func TestPlannableExcludesFollowUps(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	for _, q := range c.Plannable() {
		assert.Empty(t, q.FollowUpOf, "%s should not be plannable", q.ID)
	}

	// The follow-up itself still resolves by id.
	fu, ok := c.Get("guarantee-details")
	require.True(t, ok)
	assert.Equal(t, "guarantee", fu.FollowUpOf)
}

func TestCatalogOptionsCarryFacts(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	q, ok := c.Get("availability")
	require.True(t, ok)

	opt, ok := matchOption(q, "24-7")
	require.True(t, ok)
	assert.Equal(t, "24-7", opt.Facts["availability"])
	assert.Equal(t, true, opt.Facts["emergency_service"])
	assert.Equal(t, "emergency-focused", opt.Infers["positioning"])
	assert.Equal(t, "premium", opt.Infers["pricing_tier"])
}
