/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

package charset

import (
	"strings"

	"lxcharset/pkg/feedback"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// polishDiacritics is the Polish-diacritic character set scored by
// singleByteScore, independent of which single-byte code page produced it.
const polishDiacritics = "ąćęłńóśźżĄĆĘŁŃÓŚŹŻ"

const suspiciousSymbols = "¤¦¨´¸"

// byteWeightTable maps a byte value to a positive weight; one table per
// single-byte profile's Polish-diacritic byte layout.
type byteWeightTable map[byte]float64

var cp1250ByteWeights = byteWeightTable{
	0xA5: 2.00, 0xB9: 2.00,
	0x8C: 1.70, 0x9C: 1.70, 0x8F: 1.70, 0x9F: 1.70,
	0xC6: 0.80, 0xE6: 0.80, 0xCA: 0.80, 0xEA: 0.80,
	0xA3: 0.70, 0xB3: 0.70, 0xD1: 0.70, 0xF1: 0.70, 0xD3: 0.70, 0xF3: 0.70,
}

var iso88592ByteWeights = byteWeightTable{
	0xA1: 2.00, 0xB1: 2.00,
	0xA6: 1.70, 0xB6: 1.70, 0xAC: 1.70, 0xBC: 1.70,
	0xC6: 0.80, 0xE6: 0.80, 0xCA: 0.80, 0xEA: 0.80,
	0xA3: 0.70, 0xB3: 0.70, 0xD1: 0.70, 0xF1: 0.70, 0xD3: 0.70, 0xF3: 0.70,
}

// distributionEntry is one (expected_ratio, weight) pair of a distribution
// template.
type distributionEntry struct {
	expectedRatio float64
	weight        float64
}

type distributionTemplate map[byte]distributionEntry

var distributionTemplates = map[string]distributionTemplate{
	Windows1250: {
		0xA5: {0.0030, 1.2}, 0xB9: {0.0032, 1.2},
		0x8C: {0.0012, 1.0}, 0x9C: {0.0015, 1.0}, 0x8F: {0.0010, 1.0}, 0x9F: {0.0012, 1.0},
		0xC6: {0.0025, 0.8}, 0xE6: {0.0028, 0.8}, 0xCA: {0.0020, 0.8}, 0xEA: {0.0021, 0.8},
		0xD1: {0.0018, 0.7}, 0xF1: {0.0020, 0.7}, 0xD3: {0.0040, 0.7}, 0xF3: {0.0042, 0.7},
	},
	ISO88592: {
		0xA1: {0.0030, 1.2}, 0xB1: {0.0032, 1.2},
		0xA6: {0.0012, 1.0}, 0xB6: {0.0015, 1.0}, 0xAC: {0.0010, 1.0}, 0xBC: {0.0012, 1.0},
		0xC6: {0.0025, 0.8}, 0xE6: {0.0028, 0.8}, 0xCA: {0.0020, 0.8}, 0xEA: {0.0021, 0.8},
		0xD1: {0.0018, 0.7}, 0xF1: {0.0020, 0.7}, 0xD3: {0.0040, 0.7}, 0xF3: {0.0042, 0.7},
	},
}

// polishSpecificWeighting computes Σ own_weights - 0.75·Σ opposing_weights
// over byte ratios, clamped to [-0.9, 0.9] by the caller.
func polishSpecificWeighting(data []byte, encName string) float64 {
	if len(data) == 0 {
		return 0
	}
	table := ByteHistogram(data)
	total := float64(len(data))

	var own, opp byteWeightTable
	switch encName {
	case Windows1250:
		own, opp = cp1250ByteWeights, iso88592ByteWeights
	case ISO88592:
		own, opp = iso88592ByteWeights, cp1250ByteWeights
	default:
		return 0
	}

	var ownScore, oppScore float64
	for b, w := range own {
		ownScore += (float64(table[b]) / total) * w
	}
	for b, w := range opp {
		oppScore += (float64(table[b]) / total) * w
	}
	return ownScore - oppScore*0.75
}

// distributionMatchScore compares the observed byte distribution against
// encName's reference template, returning a score in [0, 1] where 1 means a
// very close match.
func distributionMatchScore(data []byte, encName string) float64 {
	pattern, ok := distributionTemplates[encName]
	if len(data) == 0 || !ok {
		return 0
	}
	table := ByteHistogram(data)
	total := float64(len(data))

	var weightedDistance, weightSum float64
	for b, entry := range pattern {
		actualRatio := float64(table[b]) / total
		weightedDistance += abs(actualRatio-entry.expectedRatio) * entry.weight
		weightSum += entry.weight
	}
	if weightSum <= 0 {
		return 0
	}
	normalizedDistance := weightedDistance / weightSum
	return clamp(1.0-normalizedDistance*20.0, 0, 1)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// singleByteScore implements spec.md §4.7 step 2: printable ratio plus
// Polish diacritic/ngram signal, minus C1-control and suspicious-symbol
// penalties.
func singleByteScore(decoded string) float64 {
	runes := []rune(decoded)
	if len(runes) == 0 {
		return 0
	}
	var printable, c1Controls, polishHits, suspicious int
	for _, r := range runes {
		if r == '\n' || r == '\r' || r == '\t' || isPrintableRune(r) {
			printable++
		}
		if r >= 0x0080 && r <= 0x009F {
			c1Controls++
		}
		if strings.ContainsRune(polishDiacritics, r) {
			polishHits++
		}
		if strings.ContainsRune(suspiciousSymbols, r) {
			suspicious++
		}
	}
	length := float64(len(runes))
	printableRatio := float64(printable) / length
	c1Ratio := float64(c1Controls) / length
	polishRatio := float64(polishHits) / length
	suspiciousRatio := float64(suspicious) / length

	score := printableRatio
	score += minFloat(0.35, polishRatio*4.0)
	score += minFloat(0.45, PolishNgramScore(decoded)*2.8)
	score -= c1Ratio * 2.5
	score -= suspiciousRatio * 0.8
	return score
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

type singleByteProfile struct {
	name    string
	decoder *encoding.Decoder
}

func singleByteProfiles() []singleByteProfile {
	return []singleByteProfile{
		{Windows1250, charmap.Windows1250.NewDecoder()},
		{ISO88592, charmap.ISO8859_2.NewDecoder()},
	}
}

// newSingleByteProbe strictly decodes data under each single-byte profile,
// scores the decoded text, and picks the higher-scoring encoding.
func newSingleByteProbe(bus *feedback.Bus) probe {
	return probeFunc(func(data []byte) (candidate, bool) {
		bestEncoding := Windows1250
		bestScore := -10.0
		found := false

		for _, profile := range singleByteProfiles() {
			decoded, err := profile.decoder.String(string(data))
			// The x/text charmap decoders turn undefined bytes into U+FFFD
			// instead of failing; neither code page maps a byte to U+FFFD,
			// so its presence marks a byte the code page does not define.
			if err != nil || strings.ContainsRune(decoded, 0xFFFD) {
				bus.Debug("single-byte:reject", "Single-byte candidate rejected",
					feedback.KV{Key: "encoding", Value: profile.name})
				continue
			}
			found = true
			score := singleByteScore(decoded)
			score += clamp(polishSpecificWeighting(data, profile.name), -0.9, 0.9)
			score += (distributionMatchScore(data, profile.name) - 0.5) * 1.1
			if score > bestScore {
				bestScore = score
				bestEncoding = profile.name
			}
		}

		if !found || bestScore <= -9.0 {
			bus.Debug("single-byte:none", "No valid single-byte candidate",
				feedback.KV{Key: "size", Value: len(data)})
			return candidate{}, false
		}

		confidence := clamp(0.45+bestScore*0.32, 0, 0.93)
		bus.Debug("single-byte:select", "Single-byte candidate selected",
			feedback.KV{Key: "encoding", Value: bestEncoding},
			feedback.KV{Key: "confidence", Value: confidence})
		return candidate{encoding: bestEncoding, confidence: confidence}, true
	})
}
