// Package transcript extracts spoken sentences from plain-text transcript
// files where every sentence line is wrapped in double quotes.
package transcript

import (
	"fmt"
	"os"
	"strings"
)

// Quote characters accepted at line boundaries. A sentence line must start
// with an ASCII or left curly double quote and end with an ASCII or right
// curly double quote; mixing the two styles within one line is accepted.
const (
	asciiQuote = '"'
	leftCurly  = '“'
	rightCurly = '”'
)

// Parse extracts quoted sentences from transcript content, preserving line
// order. Blank lines and lines without a surrounding quote pair are silently
// dropped; so are lines that are empty once the quotes are stripped.
func Parse(content string) []string {
	var sentences []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		runes := []rune(line)
		if len(runes) < 2 {
			continue
		}
		first, last := runes[0], runes[len(runes)-1]
		if first != asciiQuote && first != leftCurly {
			continue
		}
		if last != asciiQuote && last != rightCurly {
			continue
		}

		sentence := strings.TrimSpace(string(runes[1 : len(runes)-1]))
		if sentence == "" {
			continue
		}
		sentences = append(sentences, sentence)
	}
	return sentences
}

// ParseFile reads a UTF-8 transcript file and extracts its sentences.
func ParseFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return Parse(string(data)), nil
}
