// Package analyze provides word-frequency analytics over article titles.
package analyze

import (
	"sort"
	"strings"
)

// stopWords are common English words excluded by the filtered analysis.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true,
	"that": true, "this": true, "these": true, "those": true,
	"it": true, "its": true, "as": true, "not": true,
}

// WordCount is one word with its occurrence count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Normalize lowercases text, deletes punctuation, and collapses
// whitespace. Punctuation is deleted, not replaced: "don't" becomes
// "dont", keeping contractions as one token.
func Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	lastSpace := true
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastSpace = false
		case r == ' ', r == '\t', r == '\n', r == '\r':
			if !lastSpace {
				sb.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// WordFrequency counts words across all titles and returns those repeated
// more than twice, highest count first. Ties keep first-seen order.
func WordFrequency(titles []string) []WordCount {
	counts := make(map[string]int)
	var order []string

	for _, w := range strings.Fields(Normalize(strings.Join(titles, " "))) {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	var out []WordCount
	for _, w := range order {
		if counts[w] > 2 {
			out = append(out, WordCount{Word: w, Count: counts[w]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// WordFrequencyFiltered is WordFrequency minus common stop words.
func WordFrequencyFiltered(titles []string) []WordCount {
	var out []WordCount
	for _, wc := range WordFrequency(titles) {
		if !stopWords[wc.Word] {
			out = append(out, wc)
		}
	}
	return out
}

// UniqueWordCount returns the number of distinct normalized words across
// all texts.
func UniqueWordCount(texts []string) int {
	seen := make(map[string]bool)
	for _, w := range strings.Fields(Normalize(strings.Join(texts, " "))) {
		seen[w] = true
	}
	return len(seen)
}
