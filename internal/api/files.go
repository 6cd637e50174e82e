package api

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/semantic-retrieval/std/v1/datastore"
)

// Text extraction for uploaded files. Only text-based formats are
// accepted; binary formats like PDF need converting before upload.

// documentFromFile turns an uploaded file into a Document ready for the
// chunk-embed-store pipeline. The media type comes from the upload part
// header, with content sniffing as fallback when the client sent none.
func documentFromFile(filename, declaredType string, data []byte, meta datastore.DocumentMetadata) (datastore.Document, error) {
	if len(data) == 0 {
		return datastore.Document{}, errors.New("uploaded file is empty")
	}

	mediaType := parseMediaType(declaredType)
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = parseMediaType(http.DetectContentType(data))
	}
	if !textMediaType(mediaType) {
		return datastore.Document{}, fmt.Errorf("unsupported file type %q, upload a text-based format", mediaType)
	}
	if !utf8.Valid(data) {
		return datastore.Document{}, errors.New("file content is not valid UTF-8")
	}

	if meta.Source == "" {
		meta.Source = datastore.SourceFile
	}
	if meta.SourceID == "" {
		meta.SourceID = filename
	}
	return datastore.Document{Text: string(data), Metadata: meta}, nil
}

func parseMediaType(value string) string {
	if value == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return ""
	}
	return mediaType
}

func textMediaType(mediaType string) bool {
	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	switch mediaType {
	case "application/json", "application/xml", "application/x-ndjson":
		return true
	}
	return false
}
