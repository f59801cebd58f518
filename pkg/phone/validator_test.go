package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize("0300 1234567", "PK")
	require.NoError(t, err)
	assert.Equal(t, "+923001234567", got)

	got, err = Normalize("+923001234567", "")
	require.NoError(t, err)
	assert.Equal(t, "+923001234567", got)

	_, err = Normalize("12", "PK")
	assert.Error(t, err)

	_, err = Normalize("", "PK")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	res, err := Validate("+923001234567", "")
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.Equal(t, "+923001234567", res.E164Format)
	assert.Equal(t, "PK", res.CountryCode)
	assert.True(t, res.IsMobile)
}

func TestNormalizeLoose(t *testing.T) {
	assert.Equal(t, "+923001234567", NormalizeLoose("03001234567", "PK"))
	// Unparseable input is kept verbatim.
	assert.Equal(t, "ext. 42", NormalizeLoose("ext. 42", "PK"))
	assert.Equal(t, "", NormalizeLoose("", "PK"))
}
