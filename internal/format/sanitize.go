package format

import "github.com/microcosm-cc/bluemonday"

// htmlPolicy mirrors an article-rendering sanitization policy: it is
// deliberately broad (every structural/prose tag the block-aware text
// walk recognizes, plus the common inline set) so that a fragment the
// engine itself produced loses nothing but scripting on its way into the
// Markdown converter. Inline event handlers and javascript: URLs never
// survive. For Function-scope output, which (unlike Main/Full/Selector)
// never passed through the engine's script/style/iframe removals, this is
// where those get stripped before conversion.
var htmlPolicy = newHTMLPolicy()

func newHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowAttrs("id", "class", "title", "lang", "dir").Globally()
	p.AllowElements(
		"p", "br", "hr", "strong", "b", "em", "i", "u", "s", "small", "mark", "sup", "sub",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "dl", "dt", "dd",
		"blockquote", "pre", "code", "kbd", "samp", "var", "q", "cite", "abbr", "time",
		"article", "section", "header", "footer", "nav", "aside", "main",
		"figure", "figcaption", "address",
		"div", "span",
		"table", "thead", "tbody", "tfoot", "tr", "td", "th", "caption", "colgroup", "col",
		// Full scope only removes script/style/noscript/iframe/svg, so
		// form markup routinely survives into the pipeline and must not
		// be silently dropped here.
		"form", "label", "fieldset", "legend", "select", "option", "optgroup",
		"textarea", "button", "datalist", "output", "progress", "meter",
		"details", "summary", "picture", "source", "video", "audio", "track",
		"menu",
	)
	p.AllowElements("a", "img", "input")

	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoReferrerOnLinks(true)
	p.RequireNoFollowOnLinks(false)

	p.AllowAttrs("src", "alt", "width", "height", "srcset", "sizes").OnElements("img")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	p.AllowAttrs(
		"type", "name", "value", "placeholder", "checked", "disabled",
		"readonly", "required", "selected", "multiple", "min", "max",
		"step", "pattern", "maxlength", "for", "action", "method",
	).OnElements("form", "input", "select", "option", "textarea", "button", "label", "fieldset")
	p.AllowDataAttributes()

	return p
}

// sanitizeHTML strips scripting and event-handler markup from an HTML
// fragment before it is handed to the Markdown converter. FormatHTML
// output never passes through it.
func sanitizeHTML(fragment string) string {
	return htmlPolicy.Sanitize(fragment)
}
