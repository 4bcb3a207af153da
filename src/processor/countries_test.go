package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryName(t *testing.T) {
	assert.Equal(t, "France", CountryName("fr"))
	assert.Equal(t, "France", CountryName(" FR "))
	assert.Equal(t, "Allemagne", CountryName("DE"))
	assert.Equal(t, "Royaume-Uni", CountryName("gb"))

	// Codes outside the table pass through uppercased.
	assert.Equal(t, "ZZ", CountryName("zz"))
	assert.Equal(t, "US", CountryName("us"))

	// Nothing usable resolves to the sentinel.
	assert.Equal(t, CountryUnknown, CountryName(""))
	assert.Equal(t, CountryUnknown, CountryName("   "))
}

func TestCountryTableCoverage(t *testing.T) {
	assert.Len(t, iso2Countries, 37)
	for code, name := range iso2Countries {
		assert.Len(t, code, 2)
		assert.NotEmpty(t, name)
	}
}
