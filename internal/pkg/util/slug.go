package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 64

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[-\s]+`)
	slugPattern      = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Slugify 将标题转换为 URL 标识：兼容分解后丢弃非 ASCII 字符，转小写，空白与连字符合并为 "-"
func Slugify(value string) string {
	decomposed := norm.NFKD.String(value)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(b.String()), "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-_")

	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-_")
	}
	return slug
}

// IsValidSlug 仅允许拉丁字母、数字、连字符与下划线
func IsValidSlug(slug string) bool {
	return len(slug) <= maxSlugLength && slugPattern.MatchString(slug)
}
