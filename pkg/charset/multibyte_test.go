package charset

import (
	"testing"

	"lxcharset/pkg/feedback"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/traditionalchinese"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEncode(t *testing.T, encName, s string) []byte {
	t.Helper()
	var out []byte
	var err error
	switch encName {
	case ShiftJIS:
		out, err = japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	case EUCJP:
		out, err = japanese.EUCJP.NewEncoder().Bytes([]byte(s))
	case Big5:
		out, err = traditionalchinese.Big5.NewEncoder().Bytes([]byte(s))
	}
	require.NoError(t, err)
	return out
}

func TestValidateShiftJIS_RejectsKanaOnly(t *testing.T) {
	// Half-width kana only, no lead-trail pair: rejected by design (spec.md §9).
	data := []byte{0xA1, 0xA2, 0xA3}
	ok, _ := validateShiftJIS(data)
	assert.False(t, ok)
}

func TestValidateShiftJIS_AcceptsLeadTrailPair(t *testing.T) {
	data := mustEncode(t, ShiftJIS, "日本語のテキストです、これはサンプルです。")
	ok, signal := validateShiftJIS(data)
	require.True(t, ok)
	assert.Greater(t, signal, 0)
}

func TestValidateEUCJP_AcceptsEncodedText(t *testing.T) {
	data := mustEncode(t, EUCJP, "日本語のテキストです、これはサンプルです。")
	ok, signal := validateEUCJP(data)
	require.True(t, ok)
	assert.Greater(t, signal, 0)
}

func TestValidateBig5_AcceptsEncodedText(t *testing.T) {
	data := mustEncode(t, Big5, "這是一段中文文字樣本，用於測試編碼偵測。")
	ok, signal := validateBig5(data)
	require.True(t, ok)
	assert.Greater(t, signal, 0)
}

func TestMultiByteProbe_PicksShiftJIS(t *testing.T) {
	data := mustEncode(t, ShiftJIS, "日本語のテキストです、これはサンプルです。これはテストです。")
	c, ok := newMultiByteProbe(feedback.NewBus()).run(data)
	require.True(t, ok)
	assert.Equal(t, ShiftJIS, c.encoding)
	assert.GreaterOrEqual(t, c.confidence, 0.55)
}

func TestMultiByteProbe_PicksBig5(t *testing.T) {
	data := mustEncode(t, Big5, "這是一段中文文字樣本，用於測試編碼偵測，內容足夠長以提升信心分數。")
	c, ok := newMultiByteProbe(feedback.NewBus()).run(data)
	require.True(t, ok)
	assert.Equal(t, Big5, c.encoding)
}

func TestMultiByteProbe_RejectsBinaryGarbage(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFF, 0xFF}
	_, ok := newMultiByteProbe(feedback.NewBus()).run(data)
	assert.False(t, ok)
}
