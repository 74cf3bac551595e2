// Package format provides spreadsheet file format detection.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a spreadsheet container format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// XLSX indicates an Excel workbook (.xlsx).
	XLSX
	// XLSM indicates a macro-enabled Excel workbook (.xlsm).
	XLSM
	// XLTX indicates an Excel template (.xltx).
	XLTX
	// XLTM indicates a macro-enabled Excel template (.xltm).
	XLTM
	// XLSB indicates an Excel binary workbook (.xlsb).
	XLSB
	// XLS indicates a legacy BIFF workbook in an OLE2 compound file (.xls).
	XLS
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case XLSX:
		return "XLSX"
	case XLSM:
		return "XLSM"
	case XLTX:
		return "XLTX"
	case XLTM:
		return "XLTM"
	case XLSB:
		return "XLSB"
	case XLS:
		return "XLS"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case XLSX:
		return ".xlsx"
	case XLSM:
		return ".xlsm"
	case XLTX:
		return ".xltx"
	case XLTM:
		return ".xltm"
	case XLSB:
		return ".xlsb"
	case XLS:
		return ".xls"
	default:
		return ""
	}
}

// Supported reports whether f stores its worksheets as SpreadsheetML parts.
func (f Format) Supported() bool {
	switch f {
	case XLSX, XLSM, XLTX, XLTM:
		return true
	default:
		return false
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return XLSX
	case ".xlsm":
		return XLSM
	case ".xltx":
		return XLTX
	case ".xltm":
		return XLTM
	case ".xlsb":
		return XLSB
	case ".xls":
		return XLS
	default:
		return Unknown
	}
}

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFromMagic checks file magic bytes to determine format.
// ZIP archives return Unknown because every OOXML flavour shares the same
// signature; use DetectFromReader to tell them apart.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, oleMagic) {
		return XLS
	}
	return Unknown
}

// DetectFromReader inspects the content to determine format. Unlike
// DetectFromMagic it opens ZIP archives and looks at their parts.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, len(oleMagic))
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, zipMagic) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// detectZIPFormat inspects an OOXML archive for its workbook part and the
// content type declared for it.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	var contentTypes *zip.File
	hasWorkbookXML := false
	for _, f := range zr.File {
		switch strings.ToLower(f.Name) {
		case "xl/workbook.bin":
			return XLSB, nil
		case "xl/workbook.xml":
			hasWorkbookXML = true
		case "[content_types].xml":
			contentTypes = f
		}
	}
	if !hasWorkbookXML {
		return Unknown, nil
	}
	if contentTypes == nil {
		return XLSX, nil
	}

	rc, err := contentTypes.Open()
	if err != nil {
		return Unknown, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return Unknown, err
	}

	types := string(data)
	switch {
	case strings.Contains(types, "template.macroEnabled.main+xml"):
		return XLTM, nil
	case strings.Contains(types, "sheet.macroEnabled.main+xml"):
		return XLSM, nil
	case strings.Contains(types, "spreadsheetml.template.main+xml"):
		return XLTX, nil
	default:
		return XLSX, nil
	}
}
