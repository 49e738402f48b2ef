package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachineComplete(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		prefix  string
		suffix  string
		matched bool
	}{
		{"ambiguous fanout", []string{"abc", "abcd", "abx"}, "ab", "", true},
		{"single step before fanout", []string{"abc", "abcd", "abx"}, "a", "b", true},
		{"unique continuation", []string{"report.txt"}, "rep", "ort.txt", true},
		{"stops at shorter name", []string{"abc", "abcd"}, "ab", "c", true},
		{"exact name typed", []string{"report.txt"}, "report.txt", "", true},
		{"no such prefix", []string{"report.txt"}, "zzz", "", false},
		{"mismatch mid-name", []string{"report.txt"}, "rex", "", false},
		{"empty prefix single name", []string{"notes.md"}, "", "notes.md", true},
		{"empty prefix two names", []string{"a.txt", "b.txt"}, "", "", true},
		{"empty set", nil, "a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suffix, matched := Compile(tt.names).Complete(tt.prefix)
			assert.Equal(t, tt.matched, matched)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}

func TestMachineCompleteDirectoryNames(t *testing.T) {
	// Directory names are compiled with their trailing separator so a
	// completed directory immediately invites descending into it.
	m := Compile([]string{"src/", "srv/"})

	suffix, ok := m.Complete("s")
	assert.True(t, ok)
	assert.Equal(t, "r", suffix)

	suffix, ok = m.Complete("src")
	assert.True(t, ok)
	assert.Equal(t, "/", suffix)
}

func TestMachineContains(t *testing.T) {
	m := Compile([]string{"abc", "abcd", "dir/"})

	assert.True(t, m.Contains("abc"))
	assert.True(t, m.Contains("abcd"))
	assert.True(t, m.Contains("dir/"))
	assert.False(t, m.Contains("ab"))
	assert.False(t, m.Contains("dir"))
	assert.False(t, m.Contains(""))
}
