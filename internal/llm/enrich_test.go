package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"linkedinAgent/internal/database"
)

func strPtr(s string) *string { return &s }

func TestParseGender(t *testing.T) {
	tests := []struct {
		answer string
		want   string
	}{
		{"Male", GenderMale},
		{"male", GenderMale},
		{"  Male.  ", GenderMale},
		{"Female", GenderFemale},
		{"The gender is female", GenderFemale},
		// Обе подстроки: "female" содержит "male", побеждает Female
		{"Male or Female", GenderFemale},
		{"I cannot determine", GenderUnknown},
		{"", GenderUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseGender(tt.answer), "ответ: %q", tt.answer)
	}
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		answer string
		want   *int
	}{
		{"28", intPtr(28)},
		{" 35 ", intPtr(35)},
		{"18", intPtr(18)},
		{"80", intPtr(80)},
		// Вне диапазона - отсутствие оценки, не округление к границе
		{"17", nil},
		{"81", nil},
		{"150", nil},
		{"Unknown", nil},
		{"about 30", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := parseAge(tt.answer)
		if tt.want == nil {
			assert.Nil(t, got, "ответ: %q", tt.answer)
		} else {
			if assert.NotNil(t, got, "ответ: %q", tt.answer) {
				assert.Equal(t, *tt.want, *got)
			}
		}
	}
}

func intPtr(n int) *int { return &n }

func TestFlattenEducation(t *testing.T) {
	education := []database.Education{
		{School: strPtr("ENSIAS"), Degree: strPtr("Master"), DateRange: strPtr("2018 - 2020")},
		{School: strPtr("Lycée Mohammed V"), Degree: nil, DateRange: nil},
	}

	got := flattenEducation(education)

	assert.Equal(t,
		"- School: ENSIAS, Degree: Master, Date: 2018 - 2020\n"+
			"- School: Lycée Mohammed V, Degree: N/A, Date: N/A",
		got)
}
