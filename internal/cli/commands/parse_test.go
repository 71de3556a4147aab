package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScrapeArgs(t *testing.T) {
	keyword, location, limit, err := parseScrapeArgs("software engineer @ casablanca 5")
	require.NoError(t, err)
	assert.Equal(t, "software engineer", keyword)
	assert.Equal(t, "casablanca", location)
	assert.Equal(t, 5, limit)
}

func TestParseScrapeArgsWithoutLimit(t *testing.T) {
	keyword, location, limit, err := parseScrapeArgs("data scientist @ rabat")
	require.NoError(t, err)
	assert.Equal(t, "data scientist", keyword)
	assert.Equal(t, "rabat", location)
	assert.Equal(t, 0, limit)
}

func TestParseScrapeArgsMultiWordLocation(t *testing.T) {
	keyword, location, limit, err := parseScrapeArgs("devops @ el jadida 3")
	require.NoError(t, err)
	assert.Equal(t, "devops", keyword)
	assert.Equal(t, "el jadida", location)
	assert.Equal(t, 3, limit)
}

func TestParseScrapeArgsErrors(t *testing.T) {
	_, _, _, err := parseScrapeArgs("engineer casablanca")
	assert.Error(t, err)

	_, _, _, err = parseScrapeArgs("@ casablanca")
	assert.Error(t, err)

	_, _, _, err = parseScrapeArgs("engineer @ ")
	assert.Error(t, err)
}

func TestParseFilterArgs(t *testing.T) {
	criteria, err := parseFilterArgs("keyword=engineer gender=female min_age=25 max_age=40 limit=10")
	require.NoError(t, err)

	assert.Equal(t, "engineer", criteria.Keyword)
	assert.Equal(t, "female", criteria.Gender)
	require.NotNil(t, criteria.MinAge)
	assert.Equal(t, 25, *criteria.MinAge)
	require.NotNil(t, criteria.MaxAge)
	assert.Equal(t, 40, *criteria.MaxAge)
	assert.Equal(t, 10, criteria.Limit)
}

func TestParseFilterArgsUnderscoreMeansSpace(t *testing.T) {
	criteria, err := parseFilterArgs("education=Lycée_Mohammed_V")
	require.NoError(t, err)
	assert.Equal(t, "Lycée Mohammed V", criteria.Education)
}

func TestParseFilterArgsErrors(t *testing.T) {
	_, err := parseFilterArgs("keyword")
	assert.Error(t, err)

	_, err = parseFilterArgs("min_age=abc")
	assert.Error(t, err)

	_, err = parseFilterArgs("color=red")
	assert.Error(t, err)
}
