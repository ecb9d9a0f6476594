package cities

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"camperwatch/internal/offer"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "zurich", Normalize("Zürich"))
	assert.Equal(t, "zurich", Normalize("zurich"))
	assert.Equal(t, "zurich", Normalize("  ZURICH  "))
	assert.Equal(t, "malaga", Normalize("Málaga"))
	assert.Equal(t, "sao paulo", Normalize("São Paulo"))
	assert.Equal(t, "", Normalize("   "))
}

func TestMatches(t *testing.T) {
	o := offer.Offer{Origin: "Madrid Centro", Arrival: "Zürich"}

	assert.True(t, Matches(o, NormalizeAll([]string{"madrid"})))
	assert.True(t, Matches(o, NormalizeAll([]string{"Zurich"})))
	assert.True(t, Matches(o, NormalizeAll([]string{"Lisboa", "madrid"})))
	assert.False(t, Matches(o, NormalizeAll([]string{"Lisboa"})))
	assert.False(t, Matches(o, nil))
	assert.False(t, Matches(o, NormalizeAll([]string{"", "  "})))
}

func TestMatchesSubstringImprecision(t *testing.T) {
	// Short filters match inside longer place names. Accepted behavior,
	// not a bug to fix.
	o := offer.Offer{Origin: "Frankfurt, Germany", Arrival: "Hamburg"}
	assert.True(t, Matches(o, NormalizeAll([]string{"man"})))
}

func TestFilter(t *testing.T) {
	offers := []offer.Offer{
		{ID: "1", Origin: "Madrid", Arrival: "Barcelona"},
		{ID: "2", Origin: "Berlin", Arrival: "Hamburg"},
		{ID: "3", Origin: "Lyon", Arrival: "Zürich HB"},
	}

	filtered := Filter(offers, []string{"madrid", "zurich"})
	assert.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "3", filtered[1].ID)

	assert.Empty(t, Filter(offers, nil))
}
