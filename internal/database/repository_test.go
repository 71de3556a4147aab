package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGender(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"any", ""},
		{"  Any  ", ""},
		{"male", "Male"},
		{"FEMALE", "Female"},
		{"Female", "Female"},
		{"female", "Female"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeGender(tt.in), "вход: %q", tt.in)
	}
}

func TestDecodeEducation(t *testing.T) {
	school := "ENSIAS"
	degree := "Master"

	raw := `[{"school":"ENSIAS","degree":"Master","date_range":null}]`
	entries := decodeEducation(raw)
	require.Len(t, entries, 1)
	assert.Equal(t, school, *entries[0].School)
	assert.Equal(t, degree, *entries[0].Degree)
	assert.Nil(t, entries[0].DateRange)
}

func TestDecodeEducationTolerant(t *testing.T) {
	assert.Empty(t, decodeEducation(""))
	assert.Empty(t, decodeEducation("{broken"))
	assert.NotNil(t, decodeEducation("{broken"))
}
