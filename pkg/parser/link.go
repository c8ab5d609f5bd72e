package parser

import (
	"regexp"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

//nolint:gochecknoglobals // Read-only compiled patterns.
var (
	uriAutolinkRegexp   = regexp.MustCompile(`^<[A-Za-z][A-Za-z0-9+.\-]{1,31}:[^\x00-\x20<>]*>`)
	emailAutolinkRegexp = regexp.MustCompile(
		`^<[A-Za-z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?` +
			`(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?)*>`)
)

// bracket is an unresolved "[" or "![" waiting for its "]".
type bracket struct {
	index  int // position of the opener in the inline list
	pos    int // buffer offset of the opener
	image  bool
	active bool // cleared once a link closes around it; links do not nest
}

func (b *bracket) width() int {
	if b.image {
		return 2
	}
	return 1
}

func (p *inlineParser) openBracket(i int, image bool) (int, bool) {
	b := &bracket{pos: i, image: image, active: true}
	end := i + b.width()

	p.emit(i)
	b.index = len(p.list)
	p.push(piece{node: mdast.NewText(mdast.Range(i, end), string(p.buf[i:end])), bracket: b})
	p.brackets = append(p.brackets, b)
	return end, true
}

// closeBracket tries to complete a link or image at buf[i] == ']'. On failure
// the bracket pair stays literal text.
func (p *inlineParser) closeBracket(i int) (int, bool) {
	if len(p.brackets) == 0 {
		return 0, false
	}
	b := p.brackets[len(p.brackets)-1]
	p.brackets = p.brackets[:len(p.brackets)-1]
	if !b.active {
		return 0, false
	}

	link, end, ok := p.parseLinkTail(i, b.pos+b.width())
	if !ok {
		return 0, false
	}

	p.emit(i)
	kind := mdast.NodeLink
	if b.image {
		kind = mdast.NodeImage
	}
	node := mdast.NewNode(kind, mdast.Range(b.pos, end))
	node.Inline.Link = link
	node.Children = piecesToNodes(p.processEmphasis(p.list[b.index+1:]))

	p.list = append(p.list[:b.index], piece{node: node})
	p.emitted = end

	if !b.image {
		for _, outer := range p.brackets {
			if !outer.image {
				outer.active = false
			}
		}
	}
	return end, true
}

// parseLinkTail parses what follows the "]" at buf[i]: an inline
// destination, a full or collapsed reference, or nothing for a shortcut
// reference. textStart is the offset of the link text.
func (p *inlineParser) parseLinkTail(i, textStart int) (*mdast.LinkAttrs, int, bool) {
	next := i + 1
	if next < len(p.buf) && p.buf[next] == '(' {
		if link, end, ok := parseInlineLinkTail(p.buf, next); ok {
			return link, end, true
		}
	}

	if next < len(p.buf) && p.buf[next] == '[' {
		if label, end, ok := scanLinkLabel(p.buf, next); ok {
			return p.reference(label, mdast.RefStyleFull, end)
		}
	}

	// The link text doubles as the label for collapsed and shortcut forms.
	if i-textStart > maxLabelLength {
		return nil, 0, false
	}
	text := string(p.buf[textStart:i])
	if next+1 < len(p.buf) && p.buf[next] == '[' && p.buf[next+1] == ']' {
		return p.reference(text, mdast.RefStyleCollapsed, next+2)
	}
	return p.reference(text, mdast.RefStyleShortcut, next)
}

func (p *inlineParser) reference(label string, style mdast.ReferenceStyle, end int) (*mdast.LinkAttrs, int, bool) {
	def, ok := p.labels.lookup(label)
	if !ok {
		return nil, 0, false
	}
	return &mdast.LinkAttrs{
		Destination:    def.destination,
		Title:          def.title,
		ReferenceLabel: label,
		ReferenceStyle: style,
	}, end, true
}

// parseInlineLinkTail parses `(destination "title")` at buf[i] == '('.
func parseInlineLinkTail(buf []byte, i int) (*mdast.LinkAttrs, int, bool) {
	j := skipSpaceAndNewline(buf, i+1)
	if j < len(buf) && buf[j] == ')' {
		return &mdast.LinkAttrs{ReferenceStyle: mdast.RefStyleInline}, j + 1, true
	}

	dest, afterDest, ok := parseLinkDestination(buf, j)
	if !ok {
		return nil, 0, false
	}

	title := ""
	j = skipSpaceAndNewline(buf, afterDest)
	if j > afterDest {
		if t, afterTitle, ok := parseLinkTitle(buf, j); ok {
			title = t
			j = skipSpaceAndNewline(buf, afterTitle)
		}
	}

	if j >= len(buf) || buf[j] != ')' {
		return nil, 0, false
	}
	return &mdast.LinkAttrs{Destination: dest, Title: title, ReferenceStyle: mdast.RefStyleInline}, j + 1, true
}

// parseAutolink recognises `<scheme:...>` and `<user@host>`.
func (p *inlineParser) parseAutolink(i int) (int, bool) {
	rest := p.buf[i:]
	dest := ""
	end := 0
	if m := uriAutolinkRegexp.Find(rest); m != nil {
		end = i + len(m)
		dest = string(m[1 : len(m)-1])
	} else if m := emailAutolinkRegexp.Find(rest); m != nil {
		end = i + len(m)
		dest = "mailto:" + string(m[1:len(m)-1])
	} else {
		return 0, false
	}

	node := mdast.NewNode(mdast.NodeLink, mdast.Range(i, end))
	node.Inline.Link = &mdast.LinkAttrs{Destination: dest, ReferenceStyle: mdast.RefStyleAutolink}
	mdast.AppendChild(node, mdast.NewText(mdast.Range(i+1, end-1), string(p.buf[i+1:end-1])))
	p.add(i, piece{node: node})
	return end, true
}
