package utils

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
)

// Frontmatter is the metadata block at the top of a post. Values are
// string, float64, bool or []any.
type Frontmatter map[string]any

const frontmatterDelimiter = "---"

var (
	boolValue    = regexp.MustCompile(`(?i)^(true|false)$`)
	numericValue = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// frontmatterFormat teaches adrg/frontmatter the restricted key: value
// dialect used by the posts. It is deliberately not YAML.
var frontmatterFormat = frontmatter.NewFormat(frontmatterDelimiter, frontmatterDelimiter, unmarshalFrontmatter)

// ParseFrontmatter splits raw post text into metadata and body. It never
// fails: text without a complete leading block is returned as body with
// empty metadata.
func ParseFrontmatter(raw string) (Frontmatter, string) {
	if !hasFrontmatterBlock(raw) {
		return Frontmatter{}, strings.TrimSpace(raw)
	}

	meta := Frontmatter{}
	body, err := frontmatter.Parse(strings.NewReader(raw), &meta, frontmatterFormat)
	if err != nil {
		return Frontmatter{}, strings.TrimSpace(raw)
	}
	return meta, strings.TrimSpace(string(body))
}

// hasFrontmatterBlock reports whether the first line opens a block that a
// later line closes.
func hasFrontmatterBlock(raw string) bool {
	lines := strings.Split(raw, "\n")
	if len(lines) < 2 || !isDelimiter(lines[0]) {
		return false
	}
	for _, line := range lines[1:] {
		if isDelimiter(line) {
			return true
		}
	}
	return false
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, "\r") == frontmatterDelimiter
}

func unmarshalFrontmatter(data []byte, v any) error {
	meta, ok := v.(*Frontmatter)
	if !ok {
		return nil
	}
	if *meta == nil {
		*meta = Frontmatter{}
	}

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		(*meta)[key] = parseFrontmatterValue(strings.TrimSpace(line[idx+1:]))
	}
	return nil
}

func parseFrontmatterValue(value string) any {
	if unquoted, ok := unquote(value); ok {
		return unquoted
	}

	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		inner := strings.TrimSpace(value[1 : len(value)-1])
		items := []any{}
		if inner == "" {
			return items
		}
		for _, token := range strings.Split(inner, ",") {
			token = strings.TrimSpace(token)
			if unquoted, ok := unquote(token); ok {
				items = append(items, unquoted)
				continue
			}
			items = append(items, coerceScalar(token))
		}
		return items
	}

	return coerceScalar(value)
}

func coerceScalar(value string) any {
	if boolValue.MatchString(value) {
		return strings.EqualFold(value, "true")
	}
	if numericValue.MatchString(value) {
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n
		}
	}
	return value
}

// unquote strips one pair of matching surrounding quotes.
func unquote(value string) (string, bool) {
	if len(value) < 2 {
		return value, false
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' || first == '\'') && first == last {
		return value[1 : len(value)-1], true
	}
	return value, false
}

// ScalarString renders a frontmatter value as display text.
func ScalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, ScalarString(item))
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// EncodeFrontmatter writes meta as a frontmatter block followed by body.
// Keys are written in the given order; keys not listed are appended
// alphabetically. Strings are always quoted so they read back as strings.
func EncodeFrontmatter(meta Frontmatter, order []string, body string) string {
	keys := make([]string, 0, len(meta))
	listed := make(map[string]bool, len(order))
	for _, k := range order {
		if _, ok := meta[k]; ok && !listed[k] {
			keys = append(keys, k)
			listed[k] = true
		}
	}
	rest := make([]string, 0, len(meta))
	for k := range meta {
		if !listed[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	var b strings.Builder
	b.WriteString(frontmatterDelimiter + "\n")
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(encodeFrontmatterValue(meta[k]))
		b.WriteString("\n")
	}
	b.WriteString(frontmatterDelimiter + "\n\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	return b.String()
}

func encodeFrontmatterValue(v any) string {
	switch val := v.(type) {
	case string:
		return `"` + strings.ReplaceAll(val, "\n", " ") + `"`
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return encodeFrontmatterValue(items)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = encodeFrontmatterValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ScalarString(val)
	}
}
