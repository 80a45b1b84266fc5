package parser

import "strings"

// normaliseFlag folds a flag for fuzzy comparison: lower case, letters,
// digits and the ':' namespace separator only.
func normaliseFlag(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ':' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// tokenise splits a comma-separated flag list, trimming each entry.
func tokenise(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func validFlagName(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ',' {
			return false
		}
	}
	return !strings.HasPrefix(token, ":") && !strings.HasSuffix(token, ":")
}
