package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"folio/internal/constants"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// MoreTag separates the teaser of a post from the rest of its body.
const MoreTag = "<!--more-->"

// ImageResolver turns an image reference found in a post into a URL.
type ImageResolver interface {
	Resolve(ref string) string
}

// MarkdownRenderer renders post bodies with the presentation overrides of
// the detail page.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer(images ImageResolver) *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				renderer.WithNodeRenderers(util.Prioritized(&postRenderer{images: images}, 100)),
			),
		),
	}
}

func (r *MarkdownRenderer) Render(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(strings.ReplaceAll(md, MoreTag, "")), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// postRenderer overrides headings, code blocks, tables, blockquotes, lists,
// images and links.
type postRenderer struct {
	images ImageResolver
}

func (r *postRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(east.KindTable, r.renderTable)
}

func (r *postRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if entering {
		fmt.Fprintf(w, `<h%d class="post-heading post-h%d"`, n.Level, n.Level)
		if n.Attributes() != nil {
			html.RenderAttributes(w, n, html.HeadingAttributeFilter)
		}
		_ = w.WriteByte('>')
	} else {
		fmt.Fprintf(w, "</h%d>\n", n.Level)
	}
	return ast.WalkContinue, nil
}

func (r *postRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<div class="code-block"><pre><code`)
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		if lang := fenced.Language(source); lang != nil {
			_, _ = w.WriteString(` class="language-`)
			_, _ = w.Write(util.EscapeHTML(lang))
			_ = w.WriteByte('"')
		}
	}
	_ = w.WriteByte('>')
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
	_, _ = w.WriteString(`</code></pre>`)
	fmt.Fprintf(w, `<button type="button" class="copy-button" data-copied-label="Copied!" data-ack-ms="%d" aria-label="Copy code">Copy</button>`,
		constants.CopyAckDuration.Milliseconds())
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

func (r *postRenderer) renderBlockquote(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<blockquote class=\"post-blockquote\">\n")
	} else {
		_, _ = w.WriteString("</blockquote>\n")
	}
	return ast.WalkContinue, nil
}

func (r *postRenderer) renderList(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	tag := "ul"
	if n.IsOrdered() {
		tag = "ol"
	}
	if entering {
		fmt.Fprintf(w, `<%s class="post-list"`, tag)
		if n.IsOrdered() && n.Start != 1 {
			fmt.Fprintf(w, ` start="%d"`, n.Start)
		}
		_, _ = w.WriteString(">\n")
	} else {
		fmt.Fprintf(w, "</%s>\n", tag)
	}
	return ast.WalkContinue, nil
}

func (r *postRenderer) renderListItem(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<li class="post-list-item">`)
		if fc := node.FirstChild(); fc != nil {
			if _, ok := fc.(*ast.TextBlock); !ok {
				_ = w.WriteByte('\n')
			}
		}
	} else {
		_, _ = w.WriteString("</li>\n")
	}
	return ast.WalkContinue, nil
}

func (r *postRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)

	src := Placeholder
	if !html.IsDangerousURL(n.Destination) {
		src = r.images.Resolve(string(n.Destination))
	}
	alt := nodeText(n, source)

	_, _ = w.WriteString(`<span class="post-figure"><img src="`)
	_, _ = w.Write(util.EscapeHTML(escapeURL(src)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(alt)))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(` loading="lazy">`)
	if alt != "" {
		_, _ = w.WriteString(`<span class="post-caption">`)
		_, _ = w.Write(util.EscapeHTML([]byte(alt)))
		_, _ = w.WriteString(`</span>`)
	}
	_, _ = w.WriteString(`</span>`)
	return ast.WalkSkipChildren, nil
}

func (r *postRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	external := IsExternalURL(string(n.Destination))
	if entering {
		_, _ = w.WriteString(`<a class="post-link" href="`)
		if !html.IsDangerousURL(n.Destination) {
			_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
		}
		_ = w.WriteByte('"')
		if n.Title != nil {
			_, _ = w.WriteString(` title="`)
			_, _ = w.Write(util.EscapeHTML(n.Title))
			_ = w.WriteByte('"')
		}
		if external {
			_, _ = w.WriteString(` target="_blank" rel="noopener noreferrer"`)
		}
		_ = w.WriteByte('>')
	} else {
		if external {
			_, _ = w.WriteString(`<span class="external-link" aria-hidden="true">&#8599;</span>`)
		}
		_, _ = w.WriteString("</a>")
	}
	return ast.WalkContinue, nil
}

func (r *postRenderer) renderTable(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<div class=\"table-wrapper\"><table class=\"post-table\">\n")
	} else {
		_, _ = w.WriteString("</table></div>\n")
	}
	return ast.WalkContinue, nil
}

// IsExternalURL reports whether a link leaves the site.
func IsExternalURL(dest string) bool {
	lower := strings.ToLower(dest)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func escapeURL(src string) []byte {
	if strings.HasPrefix(src, "data:") {
		return []byte(src)
	}
	return util.URLEscape([]byte(src), true)
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(nodeText(c, source))
		}
	}
	return sb.String()
}

var (
	fencedCodePattern = regexp.MustCompile("(?ms)^[ \t]*```.*?^[ \t]*```[ \t]*$")
	headingPattern    = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}([ \t].*)?$`)
	imagePattern      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*|\b__([^_]+)__\b`)
	italicPattern     = regexp.MustCompile(`\*([^*]+)\*|\b_([^_]+)_\b`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	blockquotePattern = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// StripMarkdown reduces markdown to plain prose for excerpts.
func StripMarkdown(md string) string {
	md = fencedCodePattern.ReplaceAllString(md, "")
	md = headingPattern.ReplaceAllString(md, "")
	md = imagePattern.ReplaceAllString(md, "")
	md = linkPattern.ReplaceAllString(md, "$1")
	md = boldPattern.ReplaceAllString(md, "$1$2")
	md = italicPattern.ReplaceAllString(md, "$1$2")
	md = inlineCodePattern.ReplaceAllString(md, "$1")
	md = blockquotePattern.ReplaceAllString(md, "")
	md = whitespacePattern.ReplaceAllString(md, " ")
	return strings.TrimSpace(md)
}

// GenerateExcerpt returns the first sentence of more than 20 characters,
// cut to length runes with an ellipsis. Only the part before MoreTag is
// considered when the marker is present.
func GenerateExcerpt(md string, length int) string {
	if idx := strings.Index(md, MoreTag); idx != -1 {
		md = md[:idx]
	}

	plain := StripMarkdown(md)
	if plain == "" {
		return ""
	}
	for _, sentence := range splitSentences(plain) {
		sentence = strings.TrimSpace(sentence)
		if utf8.RuneCountInString(sentence) > 20 {
			return truncateRunes(sentence, length)
		}
	}
	return truncateRunes(plain, length)
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '.', '!', '?':
			if text[i+1] == ' ' {
				sentences = append(sentences, text[start:i+1])
				start = i + 2
			}
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

func truncateRunes(s string, length int) string {
	runes := []rune(s)
	if len(runes) > length {
		return string(runes[:length]) + "…"
	}
	return s
}
