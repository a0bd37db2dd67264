package services

import "strings"

// estimateReadTime returns the read time in minutes at an average reading
// speed of 200 words per minute, never less than one minute.
func estimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
