package util

import (
	"strings"
	"unicode"
)

// Slugify 將標題轉換為 url slug
// 只保留字母數字，其餘以 '-' 連接
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // 去除開頭的 '-'
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
