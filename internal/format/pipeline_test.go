package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgrove-dev/scopeforge/internal/core"
)

func TestApply_HTML_PassesThroughUnchanged(t *testing.T) {
	frag := `<p style="color:red">hi <em>there</em></p>`
	out := Apply(frag, nil, core.FormatHTML)
	assert.Equal(t, frag, out)
}

func TestApply_Markdown_StripsScripting(t *testing.T) {
	frag := `<p onclick="evil()">hi <script>bad()</script></p>`
	out := Apply(frag, nil, core.FormatMarkdown)
	assert.Contains(t, out, "hi")
	assert.NotContains(t, out, "bad()")
}

func TestApply_Markdown_DropsEmptyAnchor(t *testing.T) {
	frag := `<p>see <a href="/x"></a>this</p>`
	out := Apply(frag, nil, core.FormatMarkdown)
	assert.NotContains(t, out, "](/x)")
}

func TestApply_Text_UsesFallback(t *testing.T) {
	fallback := "custom   text"
	out := Apply("<p>ignored</p>", &fallback, core.FormatText)
	assert.Equal(t, "custom text", out)
}

func TestApply_Text_DerivesFromFragment(t *testing.T) {
	out := Apply("<p>hello</p><p>world</p>", nil, core.FormatText)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "world")
}

func TestNormalizeText_Idempotent(t *testing.T) {
	in := "a   b\n\n\n\nc\t\td  "
	once := normalizeText(in)
	assert.Equal(t, once, normalizeText(once))
}
