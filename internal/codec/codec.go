// Package codec provides the charset-aware byte/text conversions RFC 7230
// §3.2.4 permits for header field values: ISO-8859-1 (Latin-1), where
// every byte maps directly to the Unicode code point of the same
// numeric value. Go's default byte-to-string conversion assumes UTF-8,
// which would corrupt any header value containing a raw byte above 0x7F.
package codec

import "strings"

// DecodeLatin1 converts raw header-value bytes to text without
// reinterpreting them as UTF-8.
func DecodeLatin1(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// EncodeLatin1 converts text back to its ISO-8859-1 byte representation.
// Code points above 0xFF have no Latin-1 representation and are replaced
// with '?'.
func EncodeLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			out = append(out, '?')
			continue
		}
		out = append(out, byte(r))
	}
	return out
}
