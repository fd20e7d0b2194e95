/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

package charset

import (
	"fmt"
	"strings"
)

// ByteHistogram returns a 256-slot count vector over data.
func ByteHistogram(data []byte) [256]int {
	var table [256]int
	for _, b := range data {
		table[b]++
	}
	return table
}

// ByteRatio returns count(b)/len(data), 0 for empty input. b must be in
// [0, 255]; otherwise ErrArgumentOutOfRange is returned.
func ByteRatio(data []byte, b int) (float64, error) {
	if b < 0 || b > 255 {
		return 0, fmt.Errorf("%w: byte value %d not in 0..255", ErrArgumentOutOfRange, b)
	}
	if len(data) == 0 {
		return 0, nil
	}
	table := ByteHistogram(data)
	return float64(table[b]) / float64(len(data)), nil
}

// NgramTable returns the frequency table of length-n substrings of text.
// Empty when len(text) < n. n must be > 0; otherwise ErrArgumentOutOfRange
// is returned.
func NgramTable(text string, n int) (map[string]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be > 0, got %d", ErrArgumentOutOfRange, n)
	}
	runes := []rune(text)
	if len(runes) < n {
		return map[string]int{}, nil
	}
	table := make(map[string]int)
	for i := 0; i+n <= len(runes); i++ {
		gram := string(runes[i : i+n])
		table[gram]++
	}
	return table, nil
}

// NgramRatio returns count(token)/max(1, len(text)-len(token)+1), or 0 when
// text is shorter than token.
func NgramRatio(text, token string) float64 {
	n := len([]rune(token))
	textRunes := []rune(text)
	if n == 0 || len(textRunes) < n {
		return 0
	}
	table, err := NgramTable(text, n)
	if err != nil {
		return 0
	}
	total := len(textRunes) - n + 1
	if total < 1 {
		total = 1
	}
	return float64(table[token]) / float64(total)
}

var polishBigrams = []string{"sz", "cz", "rz", "dz", "ch", "ie", "ow", "ni"}
var polishTrigrams = []string{"prz", "str", "nie", "dzi", "rze", "szc", "czn"}

// PolishNgramScore case-folds text and scores it against fixed Polish
// bigram/trigram sets: 0.9*bigram_ratio + 1.6*trigram_ratio. Trigrams are a
// stronger language signal than bigrams, hence the higher weight.
func PolishNgramScore(text string) float64 {
	lowered := strings.ToLower(text)
	runes := []rune(lowered)
	if len(runes) < 2 {
		return 0
	}

	totalBigrams := len(runes) - 1
	if totalBigrams < 1 {
		totalBigrams = 1
	}
	totalTrigrams := len(runes) - 2
	if totalTrigrams < 1 {
		totalTrigrams = 1
	}

	bigramTable, _ := NgramTable(lowered, 2)
	trigramTable, _ := NgramTable(lowered, 3)

	var bigramHits, trigramHits int
	for _, bg := range polishBigrams {
		bigramHits += bigramTable[bg]
	}
	for _, tg := range polishTrigrams {
		trigramHits += trigramTable[tg]
	}

	bigramRatio := float64(bigramHits) / float64(totalBigrams)
	trigramRatio := float64(trigramHits) / float64(totalTrigrams)
	return bigramRatio*0.9 + trigramRatio*1.6
}
