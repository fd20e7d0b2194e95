/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

package charset

import "lxcharset/pkg/feedback"

const esc = 0x1B

// newEscapeProbe recognises ISO-2022-JP shift sequences. If ESC is absent
// it declines. If any byte >= 0x80 is present the probe rejects outright
// (ISO-2022-JP text is 7-bit clean by construction). Otherwise every ESC
// must be followed by one of the documented shift sequences; anything else,
// or truncation at end-of-buffer, rejects the whole probe.
//
// ESC & @ is accepted unconditionally here even though it differs from the
// ISO-2022-JP-2004 specification (it is a JIS X 0213:2004 announcer, not a
// general-purpose shift). This matches the original implementation's
// fixtures; it is a known quirk, not a bug to "fix".
func newEscapeProbe(bus *feedback.Bus) probe {
	return probeFunc(func(data []byte) (candidate, bool) {
		hasEsc := false
		for _, b := range data {
			if b == esc {
				hasEsc = true
				break
			}
		}
		if !hasEsc {
			return candidate{}, false
		}

		for _, b := range data {
			if b >= 0x80 {
				bus.Debug("escape:reject", "Escape sequence rejected by high-byte content")
				return candidate{}, false
			}
		}

		i, n, hits := 0, len(data), 0
		for i < n {
			b := data[i]
			if b != esc {
				i++
				continue
			}
			if i+2 >= n {
				return candidate{}, false
			}
			b1, b2 := data[i+1], data[i+2]
			switch {
			case b1 == 0x28 && (b2 == 0x42 || b2 == 0x4A || b2 == 0x49): // ESC ( B/J/I
				hits++
				i += 3
			case b1 == 0x24 && (b2 == 0x40 || b2 == 0x42): // ESC $ @ / ESC $ B
				hits++
				i += 3
			case b1 == 0x24 && b2 == 0x28: // ESC $ ( D
				if i+3 >= n || data[i+3] != 0x44 {
					return candidate{}, false
				}
				hits++
				i += 4
			case b1 == 0x26 && b2 == 0x40: // ESC & @
				hits++
				i += 3
			default:
				return candidate{}, false
			}
		}

		if hits == 0 {
			return candidate{}, false
		}

		confidence := clamp(laplace(hits, 0), 0.80, 0.99)
		bus.Debug("escape:select", "Escape-sequence encoding selected",
			feedback.KV{Key: "encoding", Value: ISO2022JP},
			feedback.KV{Key: "confidence", Value: confidence},
			feedback.KV{Key: "hits", Value: hits},
		)
		return candidate{encoding: ISO2022JP, confidence: confidence}, true
	})
}
