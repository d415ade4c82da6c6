package format

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// toMarkdown converts an HTML fragment to Markdown using ATX headings and
// fenced code blocks, dropping anchors whose text is empty or
// whitespace-only.
func toMarkdown(fragment string) string {
	converter := md.NewConverter("", true, &md.Options{
		HeadingStyle:   "atx",
		CodeBlockStyle: "fenced",
		Fence:          "```",
	})

	converter.Use(md.Plugin(func(c *md.Converter) []md.Rule {
		return []md.Rule{
			{
				Filter: []string{"a"},
				Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
					if strings.TrimSpace(selec.Text()) == "" {
						return md.String("")
					}
					return nil
				},
			},
		}
	}))

	out, err := converter.ConvertString(fragment)
	if err != nil {
		return strings.TrimRight(fragment, " \t\n")
	}
	return strings.TrimRight(out, " \t\n")
}
