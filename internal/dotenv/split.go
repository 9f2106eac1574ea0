package dotenv

import "strings"

// Split cuts line at the first `=` and normalizes both halves.
// ok is false when there is no separator or the key normalizes to "".
func Split(line string) (key, value string, ok bool) {
	rawKey, rawValue, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = Normalize(rawKey)
	if key == "" {
		return "", "", false
	}
	return key, Normalize(rawValue), true
}
