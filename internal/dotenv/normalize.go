package dotenv

import "strings"

const whitespace = " \t\r\n"

// StripTerminator removes a single trailing "\r\n" or "\n".
func StripTerminator(line string) string {
	if s, ok := strings.CutSuffix(line, "\r\n"); ok {
		return s
	}
	return strings.TrimSuffix(line, "\n")
}

// Normalize trims surrounding whitespace and then removes one layer of
// surrounding double quotes when both ends carry one. A lone quote is kept.
func Normalize(s string) string {
	s = strings.Trim(s, whitespace)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}
