package native

// truncationMarker is appended whenever output is cut at the cap, so clients
// can tell a bounded payload from a complete one.
const truncationMarker = "\n... [output truncated]"

// truncate bounds text to max characters plus the marker. Input at or under
// the cap passes through unchanged. The cut lands on a rune boundary so
// multibyte output never leaves an invalid tail before the marker.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + truncationMarker
}
