package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prefixResolver string

func (p prefixResolver) Resolve(ref string) string {
	return string(p) + strings.TrimPrefix(ref, "./")
}

func TestMarkdownRenderer_Overrides(t *testing.T) {
	r := NewMarkdownRenderer(prefixResolver("/writing/assets/"))

	tests := []struct {
		name     string
		md       string
		contains []string
		excludes []string
	}{
		{
			name:     "heading",
			md:       "## Getting Started",
			contains: []string{`<h2 class="post-heading post-h2" id="getting-started">Getting Started</h2>`},
		},
		{
			name: "fenced code with copy button",
			md:   "```go\nfmt.Println(\"<hi>\")\n```",
			contains: []string{
				`<div class="code-block"><pre><code class="language-go">fmt.Println(&quot;&lt;hi&gt;&quot;)`,
				`class="copy-button"`,
				`data-ack-ms="1200"`,
			},
		},
		{
			name:     "blockquote",
			md:       "> quoted",
			contains: []string{`<blockquote class="post-blockquote">`},
		},
		{
			name:     "ordered list keeps start",
			md:       "3. three\n4. four",
			contains: []string{`<ol class="post-list" start="3">`, `<li class="post-list-item">three</li>`},
		},
		{
			name:     "relative image resolved with caption",
			md:       "![A wave](./images/wave.png)",
			contains: []string{`<img src="/writing/assets/images/wave.png" alt="A wave" loading="lazy">`, `<span class="post-caption">A wave</span>`},
		},
		{
			name:     "dangerous image uses placeholder",
			md:       "![x](javascript:alert(1))",
			contains: []string{`src="data:image/svg+xml`},
			excludes: []string{"javascript:"},
		},
		{
			name:     "external link",
			md:       "[Go](https://go.dev)",
			contains: []string{`href="https://go.dev"`, `target="_blank" rel="noopener noreferrer"`, `class="external-link"`},
		},
		{
			name:     "internal link",
			md:       "[Home](/writing)",
			contains: []string{`<a class="post-link" href="/writing">Home</a>`},
			excludes: []string{"_blank"},
		},
		{
			name:     "table",
			md:       "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{`<div class="table-wrapper"><table class="post-table">`, "</table></div>"},
		},
		{
			name:     "more marker removed",
			md:       "Teaser\n\n<!--more-->\n\nRest",
			excludes: []string{"more"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := r.Render(tt.md)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, string(html), want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, string(html), unwanted)
			}
		})
	}
}

func TestStripMarkdown(t *testing.T) {
	md := "# Heading\n\nSome **bold** and _italic_ text with `code`, a [link](https://x.y) and ![img](a.png).\n\n> quoted line\n\n```\ncode block\n```\n"
	assert.Equal(t, "Some bold and italic text with code, a link and . quoted line", StripMarkdown(md))
}

func TestGenerateExcerpt(t *testing.T) {
	long := strings.Repeat("word ", 50) + "end."

	tests := []struct {
		name string
		md   string
		want string
	}{
		{
			name: "first qualifying sentence, headers stripped",
			md:   "# Title\n\nThis is the first real sentence of sufficient length to qualify here. Short.",
			want: "This is the first real sentence of sufficient length to qualify here.",
		},
		{
			name: "short sentences are skipped",
			md:   "Hi there. Too short! This one is long enough to be used.",
			want: "This one is long enough to be used.",
		},
		{
			name: "truncated with ellipsis",
			md:   long,
			want: strings.Repeat("word ", 32) + "…",
		},
		{
			name: "no qualifying sentence falls back to text",
			md:   "Short. Tiny.",
			want: "Short. Tiny.",
		},
		{
			name: "only text before the more marker",
			md:   "Intro paragraph that is long enough.\n\n<!--more-->\n\nLater text that is also long enough.",
			want: "Intro paragraph that is long enough.",
		},
		{
			name: "empty",
			md:   "## Only a heading",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateExcerpt(tt.md, 160))
		})
	}
}

func TestPlaceholder(t *testing.T) {
	assert.True(t, strings.HasPrefix(Placeholder, "data:image/svg+xml;utf8,"))
	assert.NotContains(t, Placeholder, " ")
}
