package pdfclean

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// writeObject serialises a single COS object in its canonical textual
// form. Dicts sort their keys so output is deterministic.
func writeObject(w io.Writer, o Object) error {
	switch v := o.(type) {
	case nil:
		_, err := io.WriteString(w, "null")
		return err
	case Keyword:
		_, err := io.WriteString(w, string(v))
		return err
	case Name:
		_, err := fmt.Fprintf(w, "/%s", string(v))
		return err
	case Integer:
		_, err := fmt.Fprintf(w, "%d", int64(v))
		return err
	case Real:
		_, err := fmt.Fprintf(w, "%g", float64(v))
		return err
	case String:
		_, err := fmt.Fprintf(w, "(%s)", string(v))
		return err
	case Reference:
		_, err := fmt.Fprintf(w, "%d %d R", v.ObjectNumber, v.GenerationNumber)
		return err
	case Array:
		if _, err := io.WriteString(w, "["); err != nil {
			return err
		}
		for i, e := range v {
			if i > 0 {
				if _, err := io.WriteString(w, " "); err != nil {
					return err
				}
			}
			if err := writeObject(w, e); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "]")
		return err
	case Dict:
		return writeDict(w, v)
	case StreamDict:
		if err := writeDict(w, v.Dict); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\nstream\n"); err != nil {
			return err
		}
		if _, err := w.Write(v.Raw); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\nendstream")
		return err
	default:
		return errors.Errorf("pdfclean: cannot serialise object of type %T", o)
	}
}

func writeDict(w io.Writer, d Dict) error {
	if _, err := io.WriteString(w, "<<"); err != nil {
		return err
	}
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "/%s ", k); err != nil {
			return err
		}
		if err := writeObject(w, d[k]); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ">>")
	return err
}

// WriteFile serialises f back to a self-contained PDF byte stream: header,
// every object with a fresh classic cross-reference table, and a trailer
// pointing at f.Trailer's /Root. Object numbers are kept as in f.Objects;
// f is expected to have been produced by Parse and then selectively
// mutated in place (e.g. via StripPaintingOperators), so references stay
// valid.
func WriteFile(f *File) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	objNums := make([]int, 0, len(f.Objects))
	seen := map[int]bool{}
	for ref := range f.Objects {
		if !seen[ref.ObjectNumber] {
			seen[ref.ObjectNumber] = true
			objNums = append(objNums, ref.ObjectNumber)
		}
	}
	sort.Ints(objNums)

	offsets := make(map[int]int, len(objNums))
	for _, n := range objNums {
		offsets[n] = buf.Len()
		obj := f.Objects[Reference{ObjectNumber: n, GenerationNumber: 0}]
		fmt.Fprintf(&buf, "%d 0 obj\n", n)
		if err := writeObject(&buf, obj); err != nil {
			return nil, errors.Wrapf(err, "pdfclean: write object %d", n)
		}
		buf.WriteString("\nendobj\n")
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objNums)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, n := range objNums {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}

	buf.WriteString("trailer\n")
	trailer := Dict{"Size": Integer(len(objNums) + 1)}
	if root, ok := f.Trailer["Root"]; ok {
		trailer["Root"] = root
	}
	if err := writeDict(&buf, trailer); err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	return buf.Bytes(), nil
}
