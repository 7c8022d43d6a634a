package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Basic Geography Quiz", "basic-geography-quiz"},
		{"  Spaces  Everywhere  ", "spaces-everywhere"},
		{"Go 101: The Basics!", "go-101-the-basics"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input=%q", tt.in)
	}
}

func TestUniqueSlug(t *testing.T) {
	a := UniqueSlug("My Quiz")
	b := UniqueSlug("My Quiz")

	assert.True(t, strings.HasPrefix(a, "my-quiz-"))
	assert.NotEqual(t, a, b)

	// 空标题也要产出可用的slug
	assert.NotEmpty(t, UniqueSlug(""))
}
