/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

package charset

import (
	"lxcharset/pkg/feedback"
	"sort"
)

// ambiguityDelta is the confidence window within which competing
// candidates are considered tied and resolved by the fallback ranking.
const ambiguityDelta = 0.03

// fallbackOrder gives tie-break priority, lowest index = highest priority.
var fallbackOrder = []string{
	UTF8, UTF8Sig, UTF16LE, UTF16BE, UTF32LE, UTF32BE,
	ISO2022JP, ShiftJIS, EUCJP, Big5, Windows1250, ISO88592, Latin1,
}

var fallbackRank = func() map[string]int {
	m := make(map[string]int, len(fallbackOrder))
	for i, enc := range fallbackOrder {
		m[enc] = i
	}
	return m
}()

func rankOf(encName string) int {
	if r, ok := fallbackRank[encName]; ok {
		return r
	}
	return len(fallbackOrder) // unknown names receive the max rank
}

// chooseByFallbackMap implements spec.md §4.8: retain candidates within
// ambiguityDelta of the best confidence; if exactly one remains, accept it;
// otherwise sort by (fallback_rank, -confidence, name) and accept the head.
func chooseByFallbackMap(bus *feedback.Bus, candidates []candidate) (candidate, bool) {
	if len(candidates) == 0 {
		return candidate{}, false
	}

	best := candidates[0].confidence
	for _, c := range candidates[1:] {
		if c.confidence > best {
			best = c.confidence
		}
	}

	var nearBest []candidate
	for _, c := range candidates {
		if best-c.confidence <= ambiguityDelta {
			nearBest = append(nearBest, c)
		}
	}

	if len(nearBest) == 1 {
		bus.Debug("fallback-map:single", "Fallback map accepted top-confidence candidate",
			feedback.KV{Key: "encoding", Value: nearBest[0].encoding},
			feedback.KV{Key: "confidence", Value: nearBest[0].confidence})
		return nearBest[0], true
	}

	sort.SliceStable(nearBest, func(i, j int) bool {
		ri, rj := rankOf(nearBest[i].encoding), rankOf(nearBest[j].encoding)
		if ri != rj {
			return ri < rj
		}
		if nearBest[i].confidence != nearBest[j].confidence {
			return nearBest[i].confidence > nearBest[j].confidence
		}
		return nearBest[i].encoding < nearBest[j].encoding
	})

	bus.Debug("fallback-map:tiebreak", "Fallback map resolved ambiguous candidates",
		feedback.KV{Key: "encoding", Value: nearBest[0].encoding},
		feedback.KV{Key: "confidence", Value: nearBest[0].confidence},
		feedback.KV{Key: "candidates", Value: len(nearBest)})
	return nearBest[0], true
}
