package dotenv

// StripComment truncates line at the first `#` that is not inside a
// double-quoted literal. Every `"` toggles the quoted state, so an
// unbalanced quote leaves the rest of the line quoted.
func StripComment(line string) string {
	quoted := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			quoted = !quoted
		case '#':
			if !quoted {
				return line[:i]
			}
		}
	}
	return line
}
