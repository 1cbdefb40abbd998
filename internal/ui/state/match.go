package state

import (
	"math"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match keeps the items a roster search finds, in their original order. An
// item matches when every query word starts one of the words of its label
// or keywords, so "nina pal" finds "Nina van Pallandt" and "marlowe" finds
// the actor playing Philip Marlowe. When nothing matches that way, a fuzzy
// match against the label decides.
func Match(items []Item, query string) []Item {
	words := queryWords(query)
	if len(words) == 0 {
		return CloneItems(items)
	}
	var found []Item
	for _, item := range items {
		if prefixesAll(item.words(), words) {
			found = append(found, item)
		}
	}
	if len(found) > 0 {
		return found
	}
	joined := strings.Join(words, " ")
	for _, item := range items {
		if fuzzy.MatchNormalizedFold(joined, item.Label) {
			found = append(found, item)
		}
	}
	return found
}

// BestMatch returns the index of the item the query most likely names: an
// exact label, then a label prefix, then a word match on the label, then a
// word match on the keywords, then the closest fuzzy match. Ties go to the
// earlier item. It returns -1 for no items and 0 when nothing matches.
func BestMatch(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	words := queryWords(query)
	if len(words) == 0 {
		return 0
	}
	best, bestScore := 0, math.MaxInt
	for i, item := range items {
		if score := matchScore(item, words); score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

const (
	scoreExact = iota
	scoreLabelPrefix
	scoreLabelWords
	scoreKeywordWords
	scoreFuzzy
)

func matchScore(item Item, words []string) int {
	joined := strings.Join(words, " ")
	label := strings.ToLower(item.Label)
	switch {
	case label == joined:
		return scoreExact
	case strings.HasPrefix(label, joined):
		return scoreLabelPrefix
	case prefixesAll(strings.Fields(label), words):
		return scoreLabelWords
	case prefixesAll(item.words(), words):
		return scoreKeywordWords
	}
	if distance := fuzzy.RankMatchNormalizedFold(joined, item.Label); distance >= 0 {
		return scoreFuzzy + distance
	}
	return math.MaxInt
}

func (it Item) words() []string {
	words := strings.Fields(strings.ToLower(it.Label))
	for _, keyword := range it.Keywords {
		words = append(words, strings.Fields(strings.ToLower(keyword))...)
	}
	return words
}

func queryWords(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// prefixesAll reports whether every query word starts some word.
func prefixesAll(words, query []string) bool {
	for _, q := range query {
		hit := false
		for _, w := range words {
			if strings.HasPrefix(w, q) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}
