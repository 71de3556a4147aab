package runlog

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPrefixesTimestamp(t *testing.T) {
	c := New(10)
	c.Add("вход выполнен")

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Regexp(t, regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] вход выполнен$`), entries[0])
}

func TestCapacityEvictsOldest(t *testing.T) {
	c := New(3)
	for i := 1; i <= 5; i++ {
		c.Addf("запись %d", i)
	}

	entries := c.Entries()
	require.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Contains(t, entry, fmt.Sprintf("запись %d", i+3))
	}
}

func TestZeroCapacityUsesDefault(t *testing.T) {
	c := New(0)
	for i := 0; i < defaultCapacity+10; i++ {
		c.Add("x")
	}

	assert.Len(t, c.Entries(), defaultCapacity)
}

func TestEntriesReturnsCopy(t *testing.T) {
	c := New(10)
	c.Add("оригинал")

	entries := c.Entries()
	entries[0] = "подмена"

	assert.Contains(t, c.Entries()[0], "оригинал")
}
