package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/hierview/pkg/errors"
)

// Format is a document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat returns the format named by s. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported document format %q (want json, yaml or toml)", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errs.New(errs.ErrCodeInvalidFormat, "cannot infer document format of %s", path)
	}
	return ParseFormat(ext)
}

// =============================================================================
// Document Serialization API
// =============================================================================

// ReadDocument decodes a document in the given format.
func ReadDocument(r io.Reader, f Format) (Document, error) {
	var doc Document
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&doc)
	default:
		return Document{}, errs.New(errs.ErrCodeInvalidFormat, "unsupported document format %q", f)
	}
	if err != nil {
		return Document{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s document", f)
	}
	return doc, nil
}

// ReadDocumentFile reads a document, choosing the format by extension.
func ReadDocumentFile(path string) (Document, error) {
	if err := errs.ValidatePath(path); err != nil {
		return Document{}, err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return ReadDocument(file, f)
}

// UnmarshalDocument decodes document bytes in the given format.
func UnmarshalDocument(data []byte, f Format) (Document, error) {
	return ReadDocument(bytes.NewReader(data), f)
}

// MarshalDocument encodes a document. JSON output is indented.
func MarshalDocument(doc Document, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument encodes a document to w.
func WriteDocument(doc Document, w io.Writer, f Format) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(doc)
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unsupported document format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// WriteDocumentFile writes a document, choosing the format by extension.
func WriteDocumentFile(doc Document, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return WriteDocument(doc, file, f)
}
