// Package ooxml gives read access to the parts of an Office Open XML package:
// a ZIP archive of named XML streams.
package ooxml

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrMissingPart is returned when a requested part is not in the package.
	ErrMissingPart = errors.New("ooxml: missing part")
	// ErrNoNamespace is returned when a part's document element carries no
	// default namespace.
	ErrNoNamespace = errors.New("ooxml: document element has no namespace")
)

// PartError records which package part failed to load.
type PartError struct {
	Part string
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("part %s: %v", e.Part, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}

// Package is an OOXML container read from an io.ReaderAt. The caller owns
// the underlying reader and must keep it open while parts are parsed.
type Package struct {
	parts map[string]*zip.File
}

// NewPackage reads a package from r, which holds size bytes.
func NewPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	p := &Package{parts: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		p.parts[partKey(f.Name)] = f
	}
	return p, nil
}

// Part names are case-insensitive and may be written with a leading slash
// or Windows separators by some producers.
func partKey(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.ToLower(strings.TrimPrefix(name, "/"))
}

// Has reports whether the package contains the named part.
func (p *Package) Has(name string) bool {
	_, ok := p.parts[partKey(name)]
	return ok
}

// ParsePart opens the named part and parses it as an XML document.
func (p *Package) ParsePart(name string) (*Document, error) {
	f, ok := p.parts[partKey(name)]
	if !ok {
		return nil, &PartError{Part: name, Err: ErrMissingPart}
	}

	rc, err := f.Open()
	if err != nil {
		return nil, &PartError{Part: name, Err: err}
	}
	defer rc.Close()

	doc, err := Parse(rc)
	if err != nil {
		return nil, &PartError{Part: name, Err: err}
	}
	return doc, nil
}
