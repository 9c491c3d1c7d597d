package domain

// ChunkReply splits a reply into ordered segments of at most maxLen
// runes each. Concatenating the segments reproduces the input; every
// segment except possibly the last is exactly maxLen runes. A reply of
// maxLen runes or fewer (including the empty string) yields exactly one
// segment. Splits are windowed, not word-aware, so a token may be cut
// mid-way.
//
// Segments carry meaning only in order; the transport must deliver
// them sequentially.
func ChunkReply(text string, maxLen int) []string {
	if maxLen < 1 {
		return []string{text}
	}
	runes := []rune(text)
	var segments []string
	for len(runes) > maxLen {
		segments = append(segments, string(runes[:maxLen]))
		runes = runes[maxLen:]
	}
	segments = append(segments, string(runes))
	return segments
}
