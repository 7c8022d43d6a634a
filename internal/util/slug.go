package util

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 把标题转成URL友好的slug
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueSlug 在slug后追加短随机后缀，避免同名冲突
func UniqueSlug(title string) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	base := Slugify(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
