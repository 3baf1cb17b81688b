package service

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// AllowedExtensions lists the document types the service accepts.
var AllowedExtensions = map[string]bool{"txt": true, "pdf": true, "docx": true}

// Allowed reports whether filename carries an accepted extension.
func Allowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return AllowedExtensions[ext]
}

// Extract returns the plain text of an uploaded document. The extension
// picks the decoder and the sniffed content type must agree with it.
func Extract(filename string, data []byte) (string, error) {
	if !Allowed(filename) {
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	mtype := mimetype.Detect(data)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		if !sniffedAs(mtype, "text/plain") {
			return "", fmt.Errorf("expected plain text, got %s", mtype.String())
		}
		return string(data), nil

	case ".pdf":
		if !sniffedAs(mtype, "application/pdf") {
			return "", fmt.Errorf("expected pdf, got %s", mtype.String())
		}
		return extractPDFText(data)

	default:
		if !sniffedAs(mtype, docxMIME) {
			return "", fmt.Errorf("expected docx, got %s", mtype.String())
		}
		return extractDocxText(data)
	}
}

// sniffedAs walks the detected type and its parents, so JSON or CSV content
// still counts as plain text.
func sniffedAs(m *mimetype.MIME, expected string) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(expected) {
			return true
		}
	}
	return false
}

func extractPDFText(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>`)
	docxTab          = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	raw := doc.Editable().GetContent()
	raw = docxParagraphEnd.ReplaceAllString(raw, "\n")
	raw = docxTab.ReplaceAllString(raw, " ")
	raw = xmlTag.ReplaceAllString(raw, "")
	return html.UnescapeString(raw), nil
}
