// Package extract turns uploaded files into the plain-text content that
// annotations anchor into. Supported inputs are plain text (passed through
// unchanged) and PDF (text runs walked page by page).
package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MIME types accepted for upload.
const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
)

// Supported reports whether the given MIME type can be extracted.
func Supported(mimeType string) bool {
	return mimeType == MimeText || mimeType == MimePDF
}

// Text reads a plain-text file's bytes as the document content, unchanged.
// Annotation offsets depend on the stored content being an exact reproduction
// of what clients render, so no normalization is applied.
func Text(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(b), nil
}

// PDF extracts text from a PDF by walking its text runs page by page: runs
// within a page are joined with single spaces, each page ends with a newline,
// and the result is trimmed. A page whose text layer cannot be decoded is
// skipped rather than failing the whole extraction; a file that cannot be
// parsed at all returns an error.
func PDF(path string) (content string, err error) {
	// The parser panics on some malformed files; treat that as a parse error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		appendPage(&b, p)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// appendPage writes one page's text runs to b, space-separated. Decode
// failures are tolerated: the page contributes nothing but extraction
// continues.
func appendPage(b *strings.Builder, p pdf.Page) {
	defer func() {
		_ = recover()
	}()

	rows, err := p.GetTextByRow()
	if err != nil {
		return
	}
	for _, row := range rows {
		for _, word := range row.Content {
			if word.S == "" {
				continue
			}
			b.WriteString(word.S)
			b.WriteString(" ")
		}
	}
}
