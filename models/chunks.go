package models

import "strings"

// SplitChunks cuts text into fixed-size character chunks for taggers with
// bounded input. Boundaries are purely length-based and may split an
// entity; duplicates across boundaries are handled by downstream dedup.
func SplitChunks(text string, size int) []string {
	text = strings.TrimSpace(text)
	if text == "" || size <= 0 {
		return nil
	}
	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
