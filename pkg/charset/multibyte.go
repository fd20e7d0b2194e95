/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

package charset

import (
	"strings"

	"lxcharset/pkg/feedback"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// validateShiftJIS strictly validates data as Shift-JIS and counts signal
// bytes (bytes belonging to a validated sequence). A buffer containing only
// half-width kana (high bytes but no accepted lead-trail pair) is rejected;
// this is an intentional precision bias, not an oversight — it keeps the
// prober from misclassifying half-width-kana-only buffers.
func validateShiftJIS(data []byte) (ok bool, signal int) {
	i, n := 0, len(data)
	pairs := 0
	hasHigh := false
	for i < n {
		b := data[i]
		if b <= 0x7F {
			i++
			continue
		}
		hasHigh = true
		if b >= 0xA1 && b <= 0xDF {
			signal++
			i++
			continue
		}
		if (b >= 0x81 && b <= 0x9F) || (b >= 0xE0 && b <= 0xFC) {
			if i+1 >= n {
				return false, 0
			}
			t := data[i+1]
			if t == 0x7F || !((t >= 0x40 && t <= 0x7E) || (t >= 0x80 && t <= 0xFC)) {
				return false, 0
			}
			signal += 2
			pairs++
			i += 2
			continue
		}
		return false, 0
	}
	if hasHigh && pairs == 0 {
		return false, 0
	}
	return true, signal
}

// validateEUCJP strictly validates data as EUC-JP and counts signal bytes.
func validateEUCJP(data []byte) (ok bool, signal int) {
	i, n := 0, len(data)
	for i < n {
		b := data[i]
		switch {
		case b <= 0x7F:
			i++
		case b == 0x8E: // JIS X 0201 kana
			if i+1 >= n {
				return false, 0
			}
			t := data[i+1]
			if t < 0xA1 || t > 0xDF {
				return false, 0
			}
			signal += 2
			i += 2
		case b == 0x8F: // JIS X 0212
			if i+2 >= n {
				return false, 0
			}
			t1, t2 := data[i+1], data[i+2]
			if t1 < 0xA1 || t1 > 0xFE || t2 < 0xA1 || t2 > 0xFE {
				return false, 0
			}
			signal += 3
			i += 3
		case b >= 0xA1 && b <= 0xFE: // JIS X 0208
			if i+1 >= n {
				return false, 0
			}
			t := data[i+1]
			if t < 0xA1 || t > 0xFE {
				return false, 0
			}
			signal += 2
			i += 2
		default:
			return false, 0
		}
	}
	return true, signal
}

// validateBig5 strictly validates data as Big5 and counts signal bytes.
func validateBig5(data []byte) (ok bool, signal int) {
	i, n := 0, len(data)
	for i < n {
		b := data[i]
		if b <= 0x7F {
			i++
			continue
		}
		if b >= 0x81 && b <= 0xFE {
			if i+1 >= n {
				return false, 0
			}
			t := data[i+1]
			if !((t >= 0x40 && t <= 0x7E) || (t >= 0xA1 && t <= 0xFE)) {
				return false, 0
			}
			signal += 2
			i += 2
			continue
		}
		return false, 0
	}
	return true, signal
}

type multiByteProfile struct {
	name      string
	validate  func([]byte) (bool, int)
	decoder   *encoding.Decoder
}

func multiByteProfiles() []multiByteProfile {
	return []multiByteProfile{
		{ShiftJIS, validateShiftJIS, japanese.ShiftJIS.NewDecoder()},
		{EUCJP, validateEUCJP, japanese.EUCJP.NewDecoder()},
		{Big5, validateBig5, traditionalchinese.Big5.NewDecoder()},
	}
}

// multiByteTextScore scores decoded text per spec.md §4.6: printable chars
// (p), kana in U+3040-30FF (k), CJK in U+4E00-9FFF (c), each over length L.
func multiByteTextScore(decoded string, encName string) float64 {
	runes := []rune(decoded)
	if len(runes) == 0 {
		return -10
	}
	var printable, kana, cjk int
	for _, r := range runes {
		if r == '\t' || r == '\n' || r == '\r' || isPrintableRune(r) {
			printable++
		}
		if r >= 0x3040 && r <= 0x30FF {
			kana++
		}
		if r >= 0x4E00 && r <= 0x9FFF {
			cjk++
		}
	}
	length := float64(len(runes))
	printableRatio := float64(printable) / length
	kanaRatio := float64(kana) / length
	cjkRatio := float64(cjk) / length

	score := printableRatio + 0.8*cjkRatio
	switch encName {
	case ShiftJIS, EUCJP:
		score += 1.0 * kanaRatio
	case Big5:
		if kanaRatio == 0 && cjkRatio >= 0.5 {
			score += 0.25
		}
		score -= 1.2 * kanaRatio
	}
	return score
}

// newMultiByteProbe runs the three strict multi-byte validators, strictly
// decodes survivors, scores the decoded text, and picks the best candidate.
func newMultiByteProbe(bus *feedback.Bus) probe {
	return probeFunc(func(data []byte) (candidate, bool) {
		bestEncoding := ""
		bestScore := -10.0
		bestRatio := 0.0
		bestSignal := 0

		for _, profile := range multiByteProfiles() {
			ok, signal := profile.validate(data)
			if !ok {
				bus.Debug("multi-byte:reject", "Multi-byte candidate rejected",
					feedback.KV{Key: "encoding", Value: profile.name})
				continue
			}
			decoded, err := profile.decoder.String(string(data))
			// The x/text decoders substitute U+FFFD for unmapped sequences
			// instead of failing; none of these encodings maps to U+FFFD.
			if err != nil || strings.ContainsRune(decoded, 0xFFFD) {
				bus.Debug("multi-byte:decode-error", "Multi-byte decode failed",
					feedback.KV{Key: "encoding", Value: profile.name})
				continue
			}

			textScore := multiByteTextScore(decoded, profile.name)
			ratio := float64(signal) / float64(maxInt(len(data), 1))
			score := textScore + 0.5*ratio
			if score > bestScore || (score == bestScore && ratio > bestRatio) {
				bestScore = score
				bestRatio = ratio
				bestSignal = signal
				bestEncoding = profile.name
			}
		}

		if bestEncoding == "" {
			bus.Debug("multi-byte:none", "No valid multi-byte candidate",
				feedback.KV{Key: "size", Value: len(data)})
			return candidate{}, false
		}

		confidence := clamp(laplace(bestSignal, 0), 0.55, 0.95)
		bus.Debug("multi-byte:select", "Multi-byte candidate selected",
			feedback.KV{Key: "encoding", Value: bestEncoding},
			feedback.KV{Key: "confidence", Value: confidence})
		return candidate{encoding: bestEncoding, confidence: confidence}, true
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
