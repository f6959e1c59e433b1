package algorithm

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue(t *testing.T) {
	want := map[ID]Difficulty{
		Bubble:    Easy,
		Selection: Medium,
		Insertion: Hard,
	}

	infos := All()
	require.Len(t, infos, 3)
	for _, info := range infos {
		assert.Equal(t, want[info.ID], info.Difficulty, info.ID)
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Description)
		assert.NotEmpty(t, info.Explanation)
		assert.NotEmpty(t, info.Hint)
	}
	assert.Equal(t, []ID{Bubble, Selection, Insertion}, IDs())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want ID
		ok   bool
	}{
		{"bubble", Bubble, true},
		{"Selection", Selection, true},
		{" INSERTION ", Insertion, true},
		{"quick", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if !tt.ok {
				assert.True(t, errors.Is(err, ErrUnknown))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate(t *testing.T) {
	for _, id := range IDs() {
		tr, err := Generate(id, []int{3, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, tr.Final().Sequence, id)
	}

	_, err := Generate("heap", []int{1})
	assert.True(t, errors.Is(err, ErrUnknown))
}

func TestMarkdown(t *testing.T) {
	info, err := Lookup(Bubble)
	require.NoError(t, err)

	md := info.Markdown()
	assert.Contains(t, md, "# Bubble Sort")
	assert.Contains(t, md, "**Difficulty:** Easy")
	assert.Contains(t, md, info.Hint)
}
