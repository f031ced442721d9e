package documents

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxExtractedText bounds the text kept on a document record
const MaxExtractedText = 64 << 10

// extractable lists the non text/* types whose bytes are readable text
var extractable = map[string]bool{
	"application/json": true,
	"application/xml":  true,
	"application/csv":  true,
}

// ExtractText returns the searchable text of a payload. PDF text is read page by
// page; other binary formats and unreadable PDFs yield an empty string.
func ExtractText(contentType string, data []byte) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	var text string
	switch {
	case mediaType == "application/pdf":
		text, err = extractPDF(data)
		if err != nil {
			return ""
		}
	case strings.HasPrefix(mediaType, "text/") || extractable[mediaType]:
		if !utf8.Valid(data) {
			return ""
		}
		text = string(data)
	default:
		return ""
	}

	text = strings.TrimSpace(text)
	if len(text) > MaxExtractedText {
		text = text[:MaxExtractedText]
		for !utf8.ValidString(text) {
			text = text[:len(text)-1]
		}
	}
	return text
}

// extractPDF returns the plain text of every page. The parser panics on some
// malformed input, so panics are turned into errors.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DetectContentType falls back to the filename extension when no content type was sent
func DetectContentType(contentType, filename string) string {
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}
	if byExt := mime.TypeByExtension(path.Ext(filename)); byExt != "" {
		return byExt
	}
	if contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

// PayloadKey is the storage key of a document payload
func PayloadKey(documentID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "payload"
	}
	return "documents/" + documentID + "/" + name
}
