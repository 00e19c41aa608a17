package pdfclean

import (
	"strconv"

	"github.com/pkg/errors"
)

// parser tokenizes and parses COS objects out of a byte slice (PDF 7.3).
// It is shared between object-dictionary parsing (reader.go) and
// content-stream operator parsing (contentstream.go): both are the same
// small grammar (numbers, names, strings, arrays, dicts, references) plus
// an operator keyword in the content-stream case.
type parser struct {
	buf []byte
	pos int

	// lastNumberText holds the raw text of the most recently scanned
	// number, so the real-number fallback in parseNumberOrReference can
	// reparse it as a float without rescanning the buffer.
	lastNumberText string
}

func newParser(buf []byte) *parser {
	return &parser{buf: buf}
}

func isWhitespace(b byte) bool {
	switch b {
	case 0x00, 0x09, 0x0a, 0x0c, 0x0d, 0x20:
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (p *parser) skipWhitespaceAndComments() {
	for p.pos < len(p.buf) {
		b := p.buf[p.pos]
		if isWhitespace(b) {
			p.pos++
			continue
		}
		if b == '%' {
			for p.pos < len(p.buf) && p.buf[p.pos] != '\n' && p.buf[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		break
	}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.buf) {
		return 0, false
	}
	return p.buf[p.pos], true
}

// parseObject parses exactly one COS object at the current position,
// advancing past it.
func (p *parser) parseObject() (Object, error) {
	p.skipWhitespaceAndComments()
	b, ok := p.peek()
	if !ok {
		return nil, errors.New("pdfclean: unexpected end of input")
	}

	switch {
	case b == '/':
		return p.parseName(), nil
	case b == '(':
		return p.parseLiteralString(), nil
	case b == '<':
		if p.pos+1 < len(p.buf) && p.buf[p.pos+1] == '<' {
			return p.parseDict()
		}
		return p.parseHexString(), nil
	case b == '[':
		return p.parseArray()
	case b == '-' || b == '+' || (b >= '0' && b <= '9') || b == '.':
		return p.parseNumberOrReference()
	default:
		return p.parseKeyword(), nil
	}
}

func (p *parser) parseName() Object {
	p.pos++ // skip '/'
	start := p.pos
	for p.pos < len(p.buf) && !isWhitespace(p.buf[p.pos]) && !isDelimiter(p.buf[p.pos]) {
		p.pos++
	}
	return Name(string(p.buf[start:p.pos]))
}

func (p *parser) parseLiteralString() Object {
	p.pos++ // skip '('
	depth := 1
	start := p.pos
	for p.pos < len(p.buf) && depth > 0 {
		switch p.buf[p.pos] {
		case '\\':
			p.pos++ // skip escaped char
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				s := String(p.buf[start:p.pos])
				p.pos++
				return s
			}
		}
		p.pos++
	}
	return String(p.buf[start:p.pos])
}

func (p *parser) parseHexString() Object {
	p.pos++ // skip '<'
	start := p.pos
	for p.pos < len(p.buf) && p.buf[p.pos] != '>' {
		p.pos++
	}
	s := String(p.buf[start:p.pos])
	if p.pos < len(p.buf) {
		p.pos++ // skip '>'
	}
	return s
}

func (p *parser) parseDict() (Object, error) {
	p.pos += 2 // skip '<<'
	d := Dict{}
	for {
		p.skipWhitespaceAndComments()
		if p.pos+1 < len(p.buf) && p.buf[p.pos] == '>' && p.buf[p.pos+1] == '>' {
			p.pos += 2
			return d, nil
		}
		if p.pos >= len(p.buf) {
			return d, errors.New("pdfclean: unterminated dict")
		}
		keyObj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		key, ok := keyObj.(Name)
		if !ok {
			return nil, errors.New("pdfclean: dict key is not a name")
		}
		val, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		d[string(key)] = val
	}
}

func (p *parser) parseArray() (Object, error) {
	p.pos++ // skip '['
	arr := Array{}
	for {
		p.skipWhitespaceAndComments()
		b, ok := p.peek()
		if !ok {
			return arr, errors.New("pdfclean: unterminated array")
		}
		if b == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

// parseNumberOrReference parses a number, and if it is immediately
// followed by "<gen> R" or "<gen> obj", folds that into a Reference
// instead (PDF's indirect-reference shorthand inside arrays/dicts).
func (p *parser) parseNumberOrReference() (Object, error) {
	n1, isInt1 := p.parseNumber()

	save := p.pos
	p.skipWhitespaceAndComments()
	if isInt1 {
		if n2, isInt2 := p.tryParseInt(); isInt2 {
			after := p.pos
			p.skipWhitespaceAndComments()
			if b, ok := p.peek(); ok && b == 'R' && p.isWordBoundaryAfter(p.pos+1) {
				p.pos++
				return Reference{ObjectNumber: int(n1), GenerationNumber: int(n2)}, nil
			}
			p.pos = after
		}
	}
	p.pos = save

	if isInt1 {
		return Integer(n1), nil
	}
	f, _ := strconv.ParseFloat(p.lastNumberText, 64)
	return Real(f), nil
}

func (p *parser) isWordBoundaryAfter(pos int) bool {
	if pos >= len(p.buf) {
		return true
	}
	return isWhitespace(p.buf[pos]) || isDelimiter(p.buf[pos])
}

func (p *parser) tryParseInt() (int64, bool) {
	start := p.pos
	if p.pos < len(p.buf) && (p.buf[p.pos] == '+' || p.buf[p.pos] == '-') {
		p.pos++
	}
	digitsStart := p.pos
	for p.pos < len(p.buf) && p.buf[p.pos] >= '0' && p.buf[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == digitsStart {
		p.pos = start
		return 0, false
	}
	n, err := strconv.ParseInt(string(p.buf[start:p.pos]), 10, 64)
	if err != nil {
		p.pos = start
		return 0, false
	}
	return n, true
}

func (p *parser) parseNumber() (int64, bool) {
	start := p.pos
	if p.pos < len(p.buf) && (p.buf[p.pos] == '+' || p.buf[p.pos] == '-') {
		p.pos++
	}
	isFloat := false
	for p.pos < len(p.buf) {
		b := p.buf[p.pos]
		if b >= '0' && b <= '9' {
			p.pos++
			continue
		}
		if b == '.' {
			isFloat = true
			p.pos++
			continue
		}
		break
	}
	p.lastNumberText = string(p.buf[start:p.pos])
	if isFloat {
		return 0, false
	}
	n, err := strconv.ParseInt(p.lastNumberText, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p *parser) parseKeyword() Object {
	start := p.pos
	for p.pos < len(p.buf) && !isWhitespace(p.buf[p.pos]) && !isDelimiter(p.buf[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		p.pos++ // always make progress on stray delimiter bytes
	}
	return Keyword(string(p.buf[start:p.pos]))
}

// Keyword is a bare content-stream operator or a PDF "true"/"false"/"null"
// literal, passed through unparsed — the content-stream operator stripper
// is the only consumer that cares about these.
type Keyword string
