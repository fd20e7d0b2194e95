/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

package charset

import "bytes"

// detectBOM recognises the five supported byte-order marks. The 32-bit
// marks are checked before the 16-bit ones because they share a byte
// prefix (FF FE ...).
func detectBOM(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return UTF32BE
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return UTF32LE
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8Sig
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return UTF16BE
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return UTF16LE
	default:
		return ""
	}
}
