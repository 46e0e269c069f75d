package xdgtheme

import "strings"

// SplitList splits a comma-separated theme file value, trimming whitespace
// and dropping empty tokens. Order and duplicates are preserved.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(value, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// JoinList is the inverse of SplitList for lists without empty tokens.
func JoinList(values []string) string {
	return strings.Join(values, ",")
}

// unescapeValue decodes the desktop-entry escape sequences \s \n \t \r and
// \\ used in human-facing values such as Name and Comment. Unknown escapes
// are passed through unchanged.
func unescapeValue(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
