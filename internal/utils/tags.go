package utils

import "strings"

// ParseTags normalises the tag shapes found in posts: a native sequence,
// a bracketed list string ("[a, 'b']") or a comma/semicolon separated
// string. Tokens are trimmed and unquoted; empty tokens are dropped and
// duplicates are kept.
func ParseTags(value any) []string {
	tags := []string{}

	switch v := value.(type) {
	case nil:
		return tags
	case []string:
		for _, t := range v {
			tags = appendTag(tags, t)
		}
	case []any:
		for _, t := range v {
			tags = appendTag(tags, ScalarString(t))
		}
	case string:
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
			s = s[1 : len(s)-1]
		}
		for _, t := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
			tags = appendTag(tags, t)
		}
	default:
		tags = appendTag(tags, ScalarString(v))
	}
	return tags
}

func appendTag(tags []string, token string) []string {
	token = strings.TrimSpace(token)
	if unquoted, ok := unquote(token); ok {
		token = strings.TrimSpace(unquoted)
	}
	if token == "" {
		return tags
	}
	return append(tags, token)
}
