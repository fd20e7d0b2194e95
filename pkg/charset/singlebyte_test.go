package charset

import (
	"testing"

	"lxcharset/pkg/feedback"

	"golang.org/x/text/encoding/charmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleByteProbe_PolishText(t *testing.T) {
	text := "Zażółć gęślą jaźń. Szczęście w prostych rzeczach."
	data, err := charmap.Windows1250.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	c, ok := newSingleByteProbe(feedback.NewBus()).run(data)
	require.True(t, ok)
	assert.Equal(t, Windows1250, c.encoding)
	assert.GreaterOrEqual(t, c.confidence, 0.0)
	assert.LessOrEqual(t, c.confidence, 0.93)
}

func TestSingleByteProbe_AmbiguityCap(t *testing.T) {
	// spec.md §8 boundary scenario 8: short repeated high-byte sample,
	// confidence must stay below the ambiguity cap.
	base := []byte{0xA1, 0xA5, 0xB1, 0xB9, 0xC6, 0xE6, 0xCA, 0xEA}
	var data []byte
	for i := 0; i < 200; i++ {
		data = append(data, base...)
	}
	c, ok := newSingleByteProbe(feedback.NewBus()).run(data)
	require.True(t, ok)
	assert.LessOrEqual(t, c.confidence, 0.72)
}

func TestDistributionMatchScore_EmptyData(t *testing.T) {
	assert.Zero(t, distributionMatchScore(nil, Windows1250))
}

func TestPolishSpecificWeighting_UnknownEncoding(t *testing.T) {
	assert.Zero(t, polishSpecificWeighting([]byte("abc"), "unknown"))
}
