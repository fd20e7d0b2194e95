/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

package charset

import "lxcharset/pkg/feedback"

// earlyExitPrefixBytes and earlyExitConfidence bound the large-buffer
// optimisation: a high-confidence verdict over the first 4096 bytes is
// trusted for the whole buffer without re-scanning it.
const (
	earlyExitPrefixBytes = 4096
	earlyExitConfidence  = 0.98
)

// Detector runs the detection pipeline against an explicit feedback.Bus,
// per spec.md §9's "explicit bus handle" design note (it replaces a
// process-wide feedback hook). It holds no other state and is safe for
// concurrent use.
type Detector struct {
	bus *feedback.Bus
}

// New constructs a Detector reporting to bus. A nil bus is replaced with
// feedback.Default().
func New(bus *feedback.Bus) *Detector {
	if bus == nil {
		bus = feedback.Default()
	}
	return &Detector{bus: bus}
}

// Detect is the package-level convenience entry point backed by the
// default no-sink bus, for call sites that do not care about observability.
func Detect(data []byte) DetectionResult {
	return New(feedback.Default()).Detect(data)
}

// Detect runs the sequenced detection pipeline described by spec.md §4.9:
// prefix early-exit pass, BOM check, empty check, escape probe, UTF-8 DFA,
// then (if high bytes are present) the multi-byte and single-byte probes
// arbitrated against each other.
func (d *Detector) Detect(data []byte) DetectionResult {
	if len(data) > earlyExitPrefixBytes {
		d.bus.Debug("detect:early-exit-check", "Running early-exit precheck",
			feedback.KV{Key: "size", Value: len(data)})
		prefixResult := d.detectCore(data[:earlyExitPrefixBytes])
		if prefixResult.Confidence > earlyExitConfidence {
			d.bus.Info("detect:early-exit-hit", "Early-exit triggered",
				feedback.KV{Key: "encoding", Value: prefixResult.Encoding},
				feedback.KV{Key: "confidence", Value: prefixResult.Confidence},
				feedback.KV{Key: "threshold", Value: earlyExitConfidence})
			d.bus.Info("detect:final", "Detection finished",
				feedback.KV{Key: "encoding", Value: prefixResult.Encoding},
				feedback.KV{Key: "confidence", Value: prefixResult.Confidence},
				feedback.KV{Key: "used_fallback", Value: prefixResult.UsedFallback},
				feedback.KV{Key: "detected_by_bom", Value: prefixResult.DetectedByBOM})
			return prefixResult
		}
		d.bus.Debug("detect:early-exit-miss", "Early-exit threshold not reached; analyzing full payload",
			feedback.KV{Key: "confidence", Value: prefixResult.Confidence},
			feedback.KV{Key: "threshold", Value: earlyExitConfidence})
	}

	result := d.detectCore(data)
	d.bus.Info("detect:final", "Detection finished",
		feedback.KV{Key: "encoding", Value: result.Encoding},
		feedback.KV{Key: "confidence", Value: result.Confidence},
		feedback.KV{Key: "used_fallback", Value: result.UsedFallback},
		feedback.KV{Key: "detected_by_bom", Value: result.DetectedByBOM})
	return result
}

// detectCore is the core detection pass, without the early-exit wrapper.
func (d *Detector) detectCore(data []byte) DetectionResult {
	d.bus.Debug("core:start", "Core detection started", feedback.KV{Key: "size", Value: len(data)})

	bomEncoding := detectBOM(data)

	if bomEncoding == UTF16LE {
		payload := data[2:]
		ok, valid, invalid := AnalyzeUTF16SurrogatePairs(payload, true)
		if ok {
			conf := maxFloat(0.9, laplace(valid, invalid))
			d.bus.Debug("core:bom:utf16le", "UTF-16 LE BOM detected and validated",
				feedback.KV{Key: "confidence", Value: conf})
			return DetectionResult{Encoding: bomEncoding, Confidence: conf, DetectedByBOM: true}
		}
		conf := minFloat(0.49, laplace(valid, invalid))
		d.bus.Warning("core:bom:utf16le-invalid", "UTF-16 LE BOM detected but payload invalid",
			feedback.KV{Key: "confidence", Value: conf})
		return DetectionResult{Encoding: bomEncoding, Confidence: conf, UsedFallback: true, DetectedByBOM: true}
	}

	if bomEncoding == UTF16BE {
		payload := data[2:]
		ok, valid, invalid := AnalyzeUTF16SurrogatePairs(payload, false)
		if ok {
			conf := maxFloat(0.9, laplace(valid, invalid))
			d.bus.Debug("core:bom:utf16be", "UTF-16 BE BOM detected and validated",
				feedback.KV{Key: "confidence", Value: conf})
			return DetectionResult{Encoding: bomEncoding, Confidence: conf, DetectedByBOM: true}
		}
		conf := minFloat(0.49, laplace(valid, invalid))
		d.bus.Warning("core:bom:utf16be-invalid", "UTF-16 BE BOM detected but payload invalid",
			feedback.KV{Key: "confidence", Value: conf})
		return DetectionResult{Encoding: bomEncoding, Confidence: conf, UsedFallback: true, DetectedByBOM: true}
	}

	if bomEncoding != "" {
		d.bus.Debug("core:bom", "BOM detected", feedback.KV{Key: "encoding", Value: bomEncoding})
		return DetectionResult{Encoding: bomEncoding, Confidence: 1.0, DetectedByBOM: true}
	}

	if len(data) == 0 {
		d.bus.Debug("core:empty", "Empty payload, defaulting to utf-8")
		return DetectionResult{Encoding: UTF8, Confidence: 1.0}
	}

	if esc, ok := newEscapeProbe(d.bus).run(data); ok {
		d.bus.Debug("core:escape", "Escape-sequence prober selected encoding",
			feedback.KV{Key: "encoding", Value: esc.encoding},
			feedback.KV{Key: "confidence", Value: esc.confidence})
		return DetectionResult{Encoding: esc.encoding, Confidence: esc.confidence}
	}

	utf8OK, utf8Valid, utf8Invalid := AnalyzeUTF8(data)
	if utf8OK {
		conf := clamp(laplace(utf8Valid, utf8Invalid), 0.70, 0.97)
		d.bus.Debug("core:utf8", "UTF-8 DFA validation passed", feedback.KV{Key: "confidence", Value: conf})
		return DetectionResult{Encoding: UTF8, Confidence: conf}
	}
	d.bus.Debug("core:utf8-invalid", "UTF-8 DFA validation failed",
		feedback.KV{Key: "valid_transitions", Value: utf8Valid},
		feedback.KV{Key: "invalid_transitions", Value: utf8Invalid})

	hasHighBytes := false
	for _, b := range data {
		if b >= 0x80 {
			hasHighBytes = true
			break
		}
	}

	if !hasHighBytes {
		d.bus.Warning("core:binary-fallback", "No high-byte signal, using utf-8 fallback")
		return DetectionResult{Encoding: UTF8, Confidence: 0, UsedFallback: true}
	}

	var candidates []candidate
	if c, ok := newMultiByteProbe(d.bus).run(data); ok {
		candidates = append(candidates, c)
	}
	if c, ok := newSingleByteProbe(d.bus).run(data); ok {
		candidates = append(candidates, c)
	}

	selected, ok := chooseByFallbackMap(d.bus, candidates)
	if !ok {
		d.bus.Warning("core:fallback-empty", "No encoding candidate available, using fallback")
		return DetectionResult{Encoding: UTF8, Confidence: 0, UsedFallback: true}
	}

	d.bus.Debug("core:candidate-selected", "Candidate selected by probers/fallback map",
		feedback.KV{Key: "encoding", Value: selected.encoding},
		feedback.KV{Key: "confidence", Value: selected.confidence},
		feedback.KV{Key: "candidate_count", Value: len(candidates)})
	return DetectionResult{Encoding: selected.encoding, Confidence: selected.confidence}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
