package encoding

import (
	"unicode/utf16"
)

// AppendUTF16LE appends the UTF-16LE encoding of s to dst and returns the
// extended slice along with the number of UTF-16 code units written.
//
// Ranging over a Go string never yields unpaired surrogates; invalid UTF-8
// bytes decode to U+FFFD and are encoded as such, matching the permissive
// behavior of the wire format (no semantic validation).
func AppendUTF16LE(dst []byte, s string) ([]byte, int) {
	count := 0
	for _, r := range s {
		if r < 0x10000 {
			u := uint16(r) //nolint:gosec
			dst = append(dst, byte(u), byte(u>>8))
			count++

			continue
		}

		r1, r2 := utf16.EncodeRune(r)
		u1 := uint16(r1) //nolint:gosec
		u2 := uint16(r2) //nolint:gosec
		dst = append(dst, byte(u1), byte(u1>>8), byte(u2), byte(u2>>8))
		count += 2
	}

	return dst, count
}

// UTF16LEBytes returns the UTF-16LE encoding of s as a new slice.
//
// ASCII input doubles in size, so capacity is preallocated at 2x the UTF-8
// length; supplementary runes need 4 bytes against 4 UTF-8 bytes, so the
// estimate never falls short by more than one growth step.
func UTF16LEBytes(s string) []byte {
	buf := make([]byte, 0, len(s)*2)
	buf, _ = AppendUTF16LE(buf, s)

	return buf
}
