package utils

import (
	"net/url"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800 450">
  <defs>
    <linearGradient id="g" x1="0" y1="0" x2="0" y2="1">
      <stop offset="0" stop-color="#111111"/>
      <stop offset="1" stop-color="#222222"/>
    </linearGradient>
  </defs>
  <rect width="800" height="450" fill="url(#g)"/>
  <text x="50%" y="50%" fill="#FFC000" font-size="28" font-family="sans-serif" text-anchor="middle" dominant-baseline="middle">Cover</text>
</svg>`

// Placeholder is the inline cover used whenever no real image resolves.
var Placeholder = placeholderDataURI()

func placeholderDataURI() string {
	m := minify.New()
	m.AddFunc("image/svg+xml", svg.Minify)

	out, err := m.String("image/svg+xml", placeholderSVG)
	if err != nil {
		out = placeholderSVG
	}
	return "data:image/svg+xml;utf8," + url.PathEscape(out)
}
