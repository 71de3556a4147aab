package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCollectDeduplicatesByCanonicalURL(t *testing.T) {
	var collected []CandidateProfile
	seen := make(map[string]bool)

	added := collect(&collected, seen, []rawProfile{
		{Name: "Alice", URL: "https://www.linkedin.com/in/alice"},
		{Name: "Alice", URL: "https://www.linkedin.com/in/alice?miniProfileUrn=xyz"},
		{Name: "Alice", URL: "https://www.linkedin.com/in/alice/"},
		{Name: "Bob", URL: "https://www.linkedin.com/in/bob"},
	})

	assert.Equal(t, 2, added)
	assert.Len(t, collected, 2)
	assert.Equal(t, "https://www.linkedin.com/in/alice", collected[0].URL)
	assert.Equal(t, "https://www.linkedin.com/in/bob", collected[1].URL)
}

func TestCollectRanksAreContiguousAcrossPages(t *testing.T) {
	var collected []CandidateProfile
	seen := make(map[string]bool)

	collect(&collected, seen, []rawProfile{
		{Name: "Alice", URL: "https://www.linkedin.com/in/alice"},
		{Name: "Bob", URL: "https://www.linkedin.com/in/bob"},
	})
	// Вторая страница: один дубликат и один новый профиль
	collect(&collected, seen, []rawProfile{
		{Name: "Bob", URL: "https://www.linkedin.com/in/bob"},
		{Name: "Carol", URL: "https://www.linkedin.com/in/carol"},
	})

	assert.Len(t, collected, 3)
	for i, p := range collected {
		assert.Equal(t, i+1, p.Rank)
	}
}

func TestCollectSkipsNonProfileURLs(t *testing.T) {
	var collected []CandidateProfile
	seen := make(map[string]bool)

	added := collect(&collected, seen, []rawProfile{
		{Name: "Company", URL: "https://www.linkedin.com/company/acme"},
		{Name: "", URL: ""},
		{Name: "Alice", URL: "https://www.linkedin.com/in/alice"},
	})

	assert.Equal(t, 1, added)
	assert.Len(t, collected, 1)
}

func TestCollectEmptyNameBecomesUnknown(t *testing.T) {
	var collected []CandidateProfile
	seen := make(map[string]bool)

	collect(&collected, seen, []rawProfile{
		{Name: "", URL: "https://www.linkedin.com/in/anon", Position: strPtr("Engineer")},
	})

	assert.Len(t, collected, 1)
	assert.Equal(t, "Unknown", collected[0].Name)
	assert.Equal(t, "Engineer", *collected[0].Position)
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.linkedin.com/in/alice?trk=search", "https://www.linkedin.com/in/alice"},
		{"https://www.linkedin.com/in/alice/", "https://www.linkedin.com/in/alice"},
		{"https://www.linkedin.com/in/alice/?trk=x", "https://www.linkedin.com/in/alice"},
		{"https://www.linkedin.com/company/acme", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalURL(tt.in), "вход: %q", tt.in)
	}
}
