// Package parsertest generates small PDF and Word documents for tests.
package parsertest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// WritePDF writes a minimal PDF with one page per entry in pages. Each page
// entry is a list of text lines rendered in Helvetica.
func WritePDF(t testing.TB, dir, name string, pages [][]string) string {
	t.Helper()

	var objects []string
	fontID := 3 + 2*len(pages)

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
	)

	for i, lines := range pages {
		var content strings.Builder
		content.WriteString("BT\n/F1 12 Tf\n14 TL\n72 720 Td\n")
		for j, line := range lines {
			if j > 0 {
				content.WriteString("T*\n")
			}
			fmt.Fprintf(&content, "(%s) Tj\n", escapePDFString(line))
		}
		content.WriteString("ET")
		stream := content.String()

		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontID, 4+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	return WriteFile(t, dir, name, buf.Bytes())
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// WriteDOCX writes a minimal Word document with one paragraph per entry.
func WriteDOCX(t testing.TB, dir, name string, paragraphs []string) string {
	t.Helper()
	return writeDOCXBody(t, dir, name, paragraphXML(t, paragraphs))
}

// WriteDOCXTable writes a Word document with the given paragraphs followed
// by a table holding one row per entry in rows.
func WriteDOCXTable(t testing.TB, dir, name string, paragraphs []string, rows [][]string) string {
	t.Helper()

	var body strings.Builder
	body.WriteString(paragraphXML(t, paragraphs))
	body.WriteString("<w:tbl>")
	for _, row := range rows {
		body.WriteString("<w:tr>")
		for _, cell := range row {
			body.WriteString("<w:tc>" + paragraphXML(t, []string{cell}) + "</w:tc>")
		}
		body.WriteString("</w:tr>")
	}
	body.WriteString("</w:tbl>")

	return writeDOCXBody(t, dir, name, body.String())
}

// WriteSpreadsheetDOCX writes a spreadsheet package under a Word file name.
// It is a valid zip and OOXML package with no WordprocessingML part.
func WriteSpreadsheetDOCX(t testing.TB, dir, name string) string {
	t.Helper()
	return WriteZip(t, dir, name, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
</Types>`,
	})
}

// WriteZip writes a zip archive holding files, keyed by archive path.
func WriteZip(t testing.TB, dir, name string, files map[string]string) string {
	t.Helper()

	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, n := range names {
		w, err := zw.Create(n)
		if err != nil {
			t.Fatalf("create %s: %v", n, err)
		}
		if _, err := w.Write([]byte(files[n])); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	return WriteFile(t, dir, name, buf.Bytes())
}

func paragraphXML(t testing.TB, paragraphs []string) string {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		var escaped bytes.Buffer
		if err := xml.EscapeText(&escaped, []byte(p)); err != nil {
			t.Fatalf("escape paragraph: %v", err)
		}
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, escaped.String())
	}
	return body.String()
}

func writeDOCXBody(t testing.TB, dir, name, body string) string {
	t.Helper()
	return WriteZip(t, dir, name, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`,
	})
}

// WriteFile writes raw bytes to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
