/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

// Package charset implements a character-encoding detector: given an opaque
// byte buffer it returns a best-guess encoding name, a confidence score, and
// two provenance flags (BOM-derived, fallback-derived). Detect is a pure
// function of its input; every decision it makes along the way can be
// observed through a feedback.Bus without changing the returned result.
package charset

import (
	"errors"
	"unicode"
)

// Canonical encoding names. These are the only values DetectionResult.Encoding
// may carry.
const (
	UTF8        = "utf-8"
	UTF8Sig     = "utf-8-sig"
	UTF16LE     = "utf-16-le"
	UTF16BE     = "utf-16-be"
	UTF32LE     = "utf-32-le"
	UTF32BE     = "utf-32-be"
	ISO2022JP   = "iso-2022-jp"
	ShiftJIS    = "shift_jis"
	EUCJP       = "euc_jp"
	Big5        = "big5"
	Windows1250 = "windows-1250"
	ISO88592    = "iso-8859-2"
	Latin1      = "latin-1" // reserved for callers; never returned by Detect
)

// ErrArgumentOutOfRange is returned by ByteRatio and NgramTable when given
// an argument outside their valid domain.
var ErrArgumentOutOfRange = errors.New("charset: argument out of range")

// DetectionResult is the immutable record returned by Detect.
type DetectionResult struct {
	// Encoding is the best-guess canonical encoding name.
	Encoding string
	// Confidence is in [0.0, 1.0].
	Confidence float64
	// UsedFallback is true when no candidate provided positive evidence and
	// the default (utf-8, confidence 0) was chosen, and also when a UTF-16
	// BOM was found but its payload failed surrogate validation (confidence
	// at most 0.49). Implies Confidence <= 0.5.
	UsedFallback bool
	// DetectedByBOM is true when a leading byte-order mark determined the
	// answer. Implies Encoding is one of the five BOM-derived names.
	DetectedByBOM bool
}

// candidate is a transient (encoding, confidence) pair produced by a probe.
type candidate struct {
	encoding   string
	confidence float64
}

// laplace computes the Laplace-smoothed Bernoulli confidence estimate over
// v valid and i invalid automaton transitions: (v+1)/(v+i+2).
func laplace(v, i int) float64 {
	if v < 0 {
		v = 0
	}
	if i < 0 {
		i = 0
	}
	return (float64(v) + 1.0) / (float64(v) + float64(i) + 2.0)
}

// isPrintableRune mirrors Python's str.isprintable() closely enough for
// scoring purposes: printable if it has a Unicode category other than
// control/separator-like "not assigned"/surrogate, excluding the ASCII
// space handling quirks that do not matter for byte-histogram scoring.
func isPrintableRune(r rune) bool {
	return unicode.IsGraphic(r)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
