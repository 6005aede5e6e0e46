package htmldoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// The selector engine supports the subset the extraction configs use:
//
//	tag            "article", "img", "p"
//	.class         ".article-body"
//	#id            "#didomi-notice-agree-button"
//	tag.class      "h1.article-title"
//	tag[attr]      "article a[href]"
//	tag[attr='v']  "meta[property='og:description']"
//	tag[attr*='v'] "h1[class*='title']"
//	^= and $= prefix/suffix attribute operators
//	descendant combinators separated by spaces
//	comma-separated alternatives, matched in document order
//
// Class attribute matching is token-wise, as in CSS.

// chain is a descendant-combinator selector: the last part must match the
// node itself, earlier parts must match ancestors in order.
type chain []simple

type simple struct {
	tag     string
	id      string
	class   string
	attrKey string
	attrOp  string // "", "=", "*=", "^=", "$="; "" means presence only
	attrVal string
}

// parseSelectorList splits a comma list into chains.
func parseSelectorList(s string) ([]chain, error) {
	var chains []chain
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var c chain
		for _, f := range strings.Fields(part) {
			sel, err := parseSimple(f)
			if err != nil {
				return nil, err
			}
			c = append(c, sel)
		}
		if len(c) > 0 {
			chains = append(chains, c)
		}
	}
	if len(chains) == 0 {
		return nil, fmt.Errorf("htmldoc: empty selector %q", s)
	}
	return chains, nil
}

func parseSimple(sel string) (simple, error) {
	var s simple

	if idx := strings.IndexByte(sel, '['); idx >= 0 {
		attr := strings.TrimSuffix(sel[idx+1:], "]")
		sel = sel[:idx]
		for _, op := range []string{"*=", "^=", "$=", "="} {
			if i := strings.Index(attr, op); i >= 0 {
				s.attrKey = attr[:i]
				s.attrOp = op
				s.attrVal = strings.Trim(attr[i+len(op):], `"'`)
				break
			}
		}
		if s.attrKey == "" {
			s.attrKey = attr
		}
		if s.attrKey == "" {
			return s, fmt.Errorf("htmldoc: bad attribute selector %q", sel)
		}
	}

	if idx := strings.IndexByte(sel, '#'); idx >= 0 {
		s.id = sel[idx+1:]
		sel = sel[:idx]
	}
	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		s.class = sel[idx+1:]
		sel = sel[:idx]
	}
	s.tag = sel
	return s, nil
}

// matches reports whether the chain matches n: the last part against n
// itself, earlier parts against successively higher ancestors.
func (c chain) matches(n *html.Node) bool {
	if !c[len(c)-1].matches(n) {
		return false
	}
	anc := n.Parent
	for i := len(c) - 2; i >= 0; i-- {
		for {
			if anc == nil {
				return false
			}
			if anc.Type == html.ElementNode && c[i].matches(anc) {
				anc = anc.Parent
				break
			}
			anc = anc.Parent
		}
	}
	return true
}

func (s simple) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.tag != "" && n.Data != s.tag {
		return false
	}
	if s.id != "" && getAttr(n, "id") != s.id {
		return false
	}
	if s.class != "" && !hasClass(n, s.class) {
		return false
	}
	if s.attrKey != "" {
		val, ok := lookupAttr(n, s.attrKey)
		if !ok {
			return false
		}
		switch s.attrOp {
		case "":
			// presence is enough
		case "=":
			if val != s.attrVal {
				return false
			}
		case "*=":
			if !strings.Contains(val, s.attrVal) {
				return false
			}
		case "^=":
			if !strings.HasPrefix(val, s.attrVal) {
				return false
			}
		case "$=":
			if !strings.HasSuffix(val, s.attrVal) {
				return false
			}
		}
	}
	return true
}

func getAttr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
