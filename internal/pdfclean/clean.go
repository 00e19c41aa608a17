package pdfclean

import "github.com/pkg/errors"

// xrefMap adapts f.Objects (keyed by object+generation) to the simpler
// Reference->Object lookup Resolve expects, ignoring generation mismatches
// — acceptable here since §4.E never encounters updated (incremented
// generation) objects in freshly scanned booklets.
func (f *File) xrefMap() map[Reference]Object {
	m := make(map[Reference]Object, len(f.Objects))
	for ref, obj := range f.Objects {
		m[Reference{ObjectNumber: ref.ObjectNumber}] = obj
		m[ref] = obj
	}
	return m
}

// pages returns every page dictionary reachable from the document's page
// tree root, found by walking Root -> Pages -> Kids recursively.
func (f *File) pages() ([]Dict, error) {
	xref := f.xrefMap()

	root, ok := DictAt(f.Trailer, "Root", xref)
	if !ok {
		return nil, errors.New("pdfclean: trailer /Root is not a dict")
	}
	pagesRoot, ok := DictAt(root, "Pages", xref)
	if !ok {
		return nil, errors.New("pdfclean: catalog has no /Pages")
	}

	var out []Dict
	var walk func(Dict) error
	walk = func(node Dict) error {
		typ, _ := NameAt(node, "Type", xref)
		if typ == "Page" {
			out = append(out, node)
			return nil
		}
		kids, ok := ArrayAt(node, "Kids", xref)
		if !ok {
			return nil
		}
		for _, k := range kids {
			kd, ok := Resolve(k, xref).(Dict)
			if !ok {
				continue
			}
			if err := walk(kd); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(pagesRoot); err != nil {
		return nil, err
	}
	return out, nil
}

// Clean implements §4.E's in-process cleaning pass: for every XObject
// reachable from any page's Resources/XObject, decode its content stream,
// strip painting operators, re-encode, and write the mutated object back
// into f. f is mutated and also returned serialised as a new PDF byte
// stream.
func Clean(raw []byte) ([]byte, error) {
	f, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "pdfclean: parse")
	}

	pages, err := f.pages()
	if err != nil {
		return nil, errors.Wrap(err, "pdfclean: locate pages")
	}

	xref := f.xrefMap()
	for _, page := range pages {
		resources, ok := DictAt(page, "Resources", xref)
		if !ok {
			continue
		}
		xobjects, ok := DictAt(resources, "XObject", xref)
		if !ok {
			continue
		}
		for _, v := range xobjects {
			ref, ok := v.(Reference)
			if !ok {
				continue
			}
			obj, ok := f.Objects[ref]
			if !ok {
				continue
			}
			sd, ok := obj.(StreamDict)
			if !ok {
				continue
			}
			cleaned, err := StripPaintingOperators(sd)
			if err != nil {
				return nil, errors.Wrapf(err, "pdfclean: clean xobject %d", ref.ObjectNumber)
			}
			f.Objects[ref] = cleaned
		}
	}

	return WriteFile(f)
}

// PageCount parses raw and returns the number of pages reachable from its
// page tree, the total the orchestrator (§4.M) needs before it can build
// the per-booklet worklist (all pages minus the title page).
func PageCount(raw []byte) (int, error) {
	f, err := Parse(raw)
	if err != nil {
		return 0, errors.Wrap(err, "pdfclean: parse")
	}
	pages, err := f.pages()
	if err != nil {
		return 0, errors.Wrap(err, "pdfclean: locate pages")
	}
	return len(pages), nil
}
