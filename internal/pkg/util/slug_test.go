package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Tech", want: "tech"},
		{title: "Hello, World!", want: "hello-world"},
		{title: "  spaced   out  ", want: "spaced-out"},
		{title: "Café Crème", want: "cafe-creme"},
		{title: "a -- b", want: "a-b"},
		{title: "_under_score_", want: "under_score"},
		{title: "Путешествия", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("travel-notes_2"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("with space"))
	assert.False(t, IsValidSlug("путешествия"))
}
