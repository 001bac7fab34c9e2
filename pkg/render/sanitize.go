package render

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	speechPolicyOnce sync.Once
	speechPolicy     *bluemonday.Policy

	tagOpen = regexp.MustCompile(`^</?([A-Za-z][A-Za-z0-9]*)`)
)

// htmlElements lists the element names treated as markup. Anything else in
// angle brackets is customer text, e.g. "1 Main St <apt 2>".
var htmlElements = map[string]struct{}{
	"a": {}, "abbr": {}, "audio": {}, "b": {}, "blockquote": {}, "body": {},
	"br": {}, "button": {}, "canvas": {}, "code": {}, "del": {}, "div": {},
	"em": {}, "embed": {}, "font": {}, "form": {}, "h1": {}, "h2": {},
	"h3": {}, "h4": {}, "h5": {}, "h6": {}, "head": {}, "hr": {}, "html": {},
	"i": {}, "iframe": {}, "img": {}, "input": {}, "ins": {}, "label": {},
	"li": {}, "link": {}, "mark": {}, "meta": {}, "noscript": {}, "object": {},
	"ol": {}, "option": {}, "p": {}, "pre": {}, "q": {}, "s": {}, "script": {},
	"select": {}, "small": {}, "source": {}, "span": {}, "strong": {},
	"style": {}, "sub": {}, "sup": {}, "svg": {}, "table": {}, "tbody": {},
	"td": {}, "textarea": {}, "th": {}, "thead": {}, "title": {}, "tr": {},
	"u": {}, "ul": {}, "video": {},
}

// SpeechText strips HTML elements and comments a customer typed into
// free-text answers so the narration engine only receives plain words.
// Angle-bracketed text that is not a known element is kept verbatim.
func SpeechText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	speechPolicyOnce.Do(func() {
		speechPolicy = bluemonday.StrictPolicy()
	})
	// StrictPolicy escapes the text it keeps; narration wants the literal
	// characters back.
	return strings.TrimSpace(html.UnescapeString(speechPolicy.Sanitize(escapeLiteralBrackets(trimmed))))
}

// escapeLiteralBrackets entity-encodes every "<" that does not open an HTML
// element or comment, so the sanitizer keeps it as text.
func escapeLiteralBrackets(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '<' && !opensMarkup(s[i:]) {
			b.WriteString("&lt;")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func opensMarkup(s string) bool {
	if strings.HasPrefix(s, "<!") {
		return true
	}
	m := tagOpen.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	_, ok := htmlElements[strings.ToLower(m[1])]
	return ok
}
