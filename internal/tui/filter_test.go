package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smby/sunny-demo/internal/api"
)

func leadNames(names ...string) []api.Lead {
	out := make([]api.Lead, 0, len(names))
	for _, n := range names {
		out = append(out, api.Lead{CompanyName: n})
	}
	return out
}

func TestFilterLeadsEmptyQueryKeepsOrder(t *testing.T) {
	t.Parallel()

	leads := leadNames("Acme", "Beta", "Gamma")
	require.Equal(t, []int{0, 1, 2}, filterLeads(leads, ""))
	require.Equal(t, []int{0, 1, 2}, filterLeads(leads, "   "))
}

func TestFilterLeadsSubstringFirst(t *testing.T) {
	t.Parallel()

	leads := leadNames(
		"Desert Bloom Staging",
		"Sun Valley Interiors",
		"Bloomfield Hotels",
		"Acme Lighting",
	)
	got := filterLeads(leads, "bloom")
	// substring hits in rank order
	require.GreaterOrEqual(t, len(got), 2)
	require.Equal(t, []int{0, 2}, got[:2])
	require.NotContains(t, got, 3)
}

func TestFilterLeadsFuzzyNearMiss(t *testing.T) {
	t.Parallel()

	leads := leadNames("Acme", "Zzzzzzzzzz")
	got := filterLeads(leads, "acne")
	require.Equal(t, []int{0}, got)

	require.Empty(t, filterLeads(leads, "qqqqqqqq"))
}

func TestFilterLeadsCaseInsensitive(t *testing.T) {
	t.Parallel()

	leads := leadNames("DESERT BLOOM")
	require.Equal(t, []int{0}, filterLeads(leads, "Desert"))
}
