package service

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx assembles the smallest package the docx reader accepts.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}

	files := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`},
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body.String() + `</w:body></w:document>`},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("cv.pdf"))
	assert.True(t, Allowed("CV.DOCX"))
	assert.True(t, Allowed("notes.txt"))
	assert.False(t, Allowed("image.png"))
	assert.False(t, Allowed("README"))
}

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract("cv.txt", []byte("Go developer & Kubernetes operator"))
	require.NoError(t, err)
	assert.Equal(t, "Go developer & Kubernetes operator", text)
}

func TestExtract_RejectsMismatchedContent(t *testing.T) {
	_, err := Extract("cv.pdf", []byte("this is not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected pdf")

	_, err = Extract("cv.docx", []byte("plain words"))
	require.Error(t, err)
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	_, err := Extract("cv.exe", []byte("MZ"))
	assert.Error(t, err)
}

func TestExtract_Docx(t *testing.T) {
	data := buildDocx(t, "Kubernetes engineer", "Shipped payment services &amp; tooling")

	text, err := Extract("cv.docx", data)
	require.NoError(t, err)
	assert.Contains(t, text, "Kubernetes engineer\n")
	assert.Contains(t, text, "Shipped payment services & tooling")
	assert.NotContains(t, text, "<w:")
}

func TestExtract_MalformedPDF(t *testing.T) {
	_, err := Extract("cv.pdf", []byte("%PDF-1.4\ngarbage"))
	assert.Error(t, err)
}
