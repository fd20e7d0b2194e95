/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

package charset

// AnalyzeUTF8 validates data as UTF-8 with a per-byte state machine and
// returns (ok, validTransitions, invalidTransitions). A truncated
// multi-byte sequence at end-of-buffer counts as one invalid transition.
func AnalyzeUTF8(data []byte) (ok bool, valid int, invalid int) {
	remaining := 0
	firstContinuation := false
	firstMin, firstMax := byte(0x80), byte(0xBF)

	for _, b := range data {
		if remaining == 0 {
			switch {
			case b <= 0x7F:
				valid++
				continue
			case b >= 0xC2 && b <= 0xDF:
				remaining, firstContinuation = 1, true
				firstMin, firstMax = 0x80, 0xBF
				valid++
				continue
			case b == 0xE0:
				remaining, firstContinuation = 2, true
				firstMin, firstMax = 0xA0, 0xBF // rejects overlongs
				valid++
				continue
			case (b >= 0xE1 && b <= 0xEC) || (b >= 0xEE && b <= 0xEF):
				remaining, firstContinuation = 2, true
				firstMin, firstMax = 0x80, 0xBF
				valid++
				continue
			case b == 0xED:
				remaining, firstContinuation = 2, true
				firstMin, firstMax = 0x80, 0x9F // rejects surrogates
				valid++
				continue
			case b == 0xF0:
				remaining, firstContinuation = 3, true
				firstMin, firstMax = 0x90, 0xBF // rejects overlongs
				valid++
				continue
			case b >= 0xF1 && b <= 0xF3:
				remaining, firstContinuation = 3, true
				firstMin, firstMax = 0x80, 0xBF
				valid++
				continue
			case b == 0xF4:
				remaining, firstContinuation = 3, true
				firstMin, firstMax = 0x80, 0x8F // rejects > U+10FFFF
				valid++
				continue
			default:
				invalid++
				return false, valid, invalid
			}
		}

		if firstContinuation {
			if b < firstMin || b > firstMax {
				invalid++
				return false, valid, invalid
			}
			firstContinuation = false
			remaining--
			valid++
			continue
		}

		if b < 0x80 || b > 0xBF {
			invalid++
			return false, valid, invalid
		}
		remaining--
		valid++
	}

	if remaining != 0 {
		invalid++
		return false, valid, invalid
	}
	return true, valid, invalid
}

// ValidUTF8DFA reports whether data is valid UTF-8 per AnalyzeUTF8.
func ValidUTF8DFA(data []byte) bool {
	ok, _, _ := AnalyzeUTF8(data)
	return ok
}
