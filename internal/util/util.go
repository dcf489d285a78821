// Package util holds small helpers shared by the persistence and delivery layers.
package util

import (
	"fmt"
	"strings"
	"time"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so keyword is matched literally.
func EscapeLike(keyword string) string {
	return likeEscaper.Replace(keyword)
}

// ContainsPattern builds a LIKE/ILIKE pattern matching keyword anywhere in the column.
// An empty keyword yields "%", which matches every row.
func ContainsPattern(keyword string) string {
	return "%" + EscapeLike(keyword) + "%"
}

// TotalPages returns ceil(total/size). A non-positive size yields 0.
func TotalPages(total int64, size int) int64 {
	if size <= 0 || total <= 0 {
		return 0
	}
	s := int64(size)

	return (total + s - 1) / s
}

// Offset converts a zero-based page index into a row offset.
func Offset(page, size int) int {
	return page * size
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}
