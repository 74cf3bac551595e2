package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{XLSX, "XLSX"},
		{XLSM, "XLSM"},
		{XLTX, "XLTX"},
		{XLTM, "XLTM"},
		{XLSB, "XLSB"},
		{XLS, "XLS"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{XLSX, ".xlsx"},
		{XLSM, ".xlsm"},
		{XLTX, ".xltx"},
		{XLTM, ".xltm"},
		{XLSB, ".xlsb"},
		{XLS, ".xls"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Supported(t *testing.T) {
	for _, f := range []Format{XLSX, XLSM, XLTX, XLTM} {
		if !f.Supported() {
			t.Errorf("%v.Supported() = false, want true", f)
		}
	}
	for _, f := range []Format{XLSB, XLS, Unknown} {
		if f.Supported() {
			t.Errorf("%v.Supported() = true, want false", f)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"book.xlsx", XLSX},
		{"book.XLSX", XLSX},
		{"book.Xlsx", XLSX},
		{"book.xlsm", XLSM},
		{"book.xltx", XLTX},
		{"book.xltm", XLTM},
		{"book.xlsb", XLSB},
		{"book.xls", XLS},
		{"book.csv", Unknown},
		{"book", Unknown},
		{"", Unknown},
		{"/path/to/file.xlsx", XLSX},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "OLE2 compound file",
			data: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00},
			want: XLS,
		},
		{
			name: "ZIP magic bytes",
			data: []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00},
			want: Unknown, // ZIP needs further inspection
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "short OLE prefix",
			data: []byte{0xD0, 0xCF},
			want: Unknown,
		},
		{
			name: "text file",
			data: []byte("Hello, World!"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func zipWith(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

func contentTypes(mainType string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Override PartName="/xl/workbook.xml" ContentType="application/vnd.` + mainType + `"/>
</Types>`
}

func TestDetectFromReader_ZIP(t *testing.T) {
	tests := []struct {
		name  string
		parts map[string]string
		want  Format
	}{
		{
			name: "workbook",
			parts: map[string]string{
				"[Content_Types].xml": contentTypes("openxmlformats-officedocument.spreadsheetml.sheet.main+xml"),
				"xl/workbook.xml":     "<workbook/>",
			},
			want: XLSX,
		},
		{
			name: "macro-enabled workbook",
			parts: map[string]string{
				"[Content_Types].xml": contentTypes("ms-excel.sheet.macroEnabled.main+xml"),
				"xl/workbook.xml":     "<workbook/>",
			},
			want: XLSM,
		},
		{
			name: "template",
			parts: map[string]string{
				"[Content_Types].xml": contentTypes("openxmlformats-officedocument.spreadsheetml.template.main+xml"),
				"xl/workbook.xml":     "<workbook/>",
			},
			want: XLTX,
		},
		{
			name: "macro-enabled template",
			parts: map[string]string{
				"[Content_Types].xml": contentTypes("ms-excel.template.macroEnabled.main+xml"),
				"xl/workbook.xml":     "<workbook/>",
			},
			want: XLTM,
		},
		{
			name:  "workbook without content types",
			parts: map[string]string{"xl/workbook.xml": "<workbook/>"},
			want:  XLSX,
		},
		{
			name:  "binary workbook",
			parts: map[string]string{"xl/workbook.bin": "\x00"},
			want:  XLSB,
		},
		{
			name:  "word document",
			parts: map[string]string{"word/document.xml": "<document/>"},
			want:  Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := zipWith(t, tt.parts)
			got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_OLE(t *testing.T) {
	data := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 64)...)

	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != XLS {
		t.Errorf("DetectFromReader() = %v, want XLS", got)
	}
}

func TestDetectFromReader_Unknown(t *testing.T) {
	data := []byte("Hello, World! This is plain text.")

	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", got)
	}
}
