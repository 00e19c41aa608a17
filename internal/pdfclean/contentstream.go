package pdfclean

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/projekt-gbx/gbx-digitalisierer/pkg/filter"
)

// paintingOperators is the set §4.E strips: strokes, fills, both, and
// end-path-without-paint. Clip operators (W, W*) and text/graphics-state
// operators are left untouched — only the operators that actually put ink
// on the page are removed.
var paintingOperators = map[string]bool{
	"S": true, "s": true,
	"f": true, "F": true, "f*": true,
	"B": true, "b": true, "B*": true, "b*": true,
	"n": true,
}

// filterNames returns the /Filter entry of d as an ordered list of filter
// names, handling both the single-Name and Array-of-Names forms.
func filterNames(d Dict) []string {
	switch v := d["Filter"].(type) {
	case Name:
		return []string{string(v)}
	case Array:
		var names []string
		for _, e := range v {
			if n, ok := e.(Name); ok {
				names = append(names, string(n))
			}
		}
		return names
	default:
		return nil
	}
}

// Decode fully decodes sd's raw bytes through its filter chain.
func Decode(sd StreamDict) ([]byte, error) {
	data := sd.Raw
	for _, name := range filterNames(sd.Dict) {
		f, err := filter.NewFilter(name, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "pdfclean: unsupported stream filter %s", name)
		}
		buf, err := f.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "pdfclean: decode %s", name)
		}
		data = buf.Bytes()
	}
	return data, nil
}

// Encode re-applies sd's original filter chain to data, returning the new
// raw bytes. Decode applies the chain left to right, so Encode applies it
// right to left to re-derive the same representation.
func Encode(sd StreamDict, data []byte) ([]byte, error) {
	names := filterNames(sd.Dict)
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		f, err := filter.NewFilter(name, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "pdfclean: unsupported stream filter %s", name)
		}
		buf, err := f.Encode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "pdfclean: encode %s", name)
		}
		data = buf.Bytes()
	}
	return data, nil
}

// contentToken is one parsed content-stream element: either an operand
// (any COS object) or an operator keyword, in stream order.
type contentToken struct {
	operand  Object
	operator string
	isOp     bool
}

func tokenizeContentStream(data []byte) ([]contentToken, error) {
	p := newParser(data)
	var tokens []contentToken
	for {
		p.skipWhitespaceAndComments()
		if _, ok := p.peek(); !ok {
			break
		}
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		if kw, ok := obj.(Keyword); ok {
			tokens = append(tokens, contentToken{operator: string(kw), isOp: true})
			continue
		}
		tokens = append(tokens, contentToken{operand: obj})
	}
	return tokens, nil
}

func writeContentStream(w io.Writer, tokens []contentToken) error {
	var pending []contentToken
	for _, t := range tokens {
		if !t.isOp {
			pending = append(pending, t)
			continue
		}
		if paintingOperators[t.operator] {
			pending = nil
			continue
		}
		for _, operand := range pending {
			if err := writeObject(w, operand.operand); err != nil {
				return err
			}
			if _, err := w.Write([]byte(" ")); err != nil {
				return err
			}
		}
		pending = nil
		if _, err := w.Write([]byte(t.operator)); err != nil {
			return err
		}
		if _, err := w.Write([]byte("\n")); err != nil {
			return err
		}
	}
	// Any trailing operands with no following operator (malformed stream
	// tail) are dropped rather than emitted dangling.
	return nil
}

// StripPaintingOperators decodes sd, removes every path-painting operator
// invocation (and its operands) per §4.E, and re-encodes the result
// through sd's original filter chain.
func StripPaintingOperators(sd StreamDict) (StreamDict, error) {
	decoded, err := Decode(sd)
	if err != nil {
		return sd, err
	}

	tokens, err := tokenizeContentStream(decoded)
	if err != nil {
		return sd, errors.Wrap(err, "pdfclean: tokenize content stream")
	}

	var buf bytes.Buffer
	if err := writeContentStream(&buf, tokens); err != nil {
		return sd, errors.Wrap(err, "pdfclean: write content stream")
	}

	raw, err := Encode(sd, buf.Bytes())
	if err != nil {
		return sd, err
	}

	out := sd
	out.Raw = raw
	d := Dict{}
	for k, v := range sd.Dict {
		d[k] = v
	}
	d["Length"] = Integer(len(raw))
	out.Dict = d
	return out, nil
}
