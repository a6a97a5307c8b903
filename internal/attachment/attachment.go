// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package attachment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
)

// Error variables for attachment handling.
var (
	// ErrUnsupportedType indicates the file extension is not on the allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrCannotCompress indicates an image could not be brought under the
	// size budget without shrinking below the minimum dimension.
	ErrCannotCompress = errors.New("cannot compress image to fit size budget")

	// ErrCorruptFile indicates the file could not be decoded at all.
	ErrCorruptFile = errors.New("corrupt or unreadable file")
)

// Kind classifies a supported attachment.
type Kind int

const (
	KindImage Kind = iota
	KindSpreadsheet
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindSpreadsheet:
		return "spreadsheet"
	default:
		return "unknown"
	}
}

// validExtensions maps allowed file extensions to their kind.
var validExtensions = map[string]Kind{
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".webp": KindImage,
	".xlsx": KindSpreadsheet,
}

// ValidExtensions returns the allow-list for display in help text.
func ValidExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".webp", ".xlsx"}
}

// =============================================================================
// ATTACHMENT TYPE
// =============================================================================

// Attachment is a staged file waiting to be sent with the next turn.
type Attachment struct {
	// Path is the absolute path to the file.
	Path string

	// Name is the base name for display.
	Name string

	// Kind is the classification from the extension allow-list.
	Kind Kind
}

// Stage validates a path against the allow-list and returns an Attachment.
// The file must exist and be a regular file; content is not read until
// Encode so a file edited between staging and sending picks up the edit.
func Stage(path string) (*Attachment, error) {
	ext := strings.ToLower(filepath.Ext(path))
	kind, ok := validExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnsupportedType, ext, strings.Join(ValidExtensions(), ", "))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedType, path)
	}

	return &Attachment{
		Path: abs,
		Name: filepath.Base(abs),
		Kind: kind,
	}, nil
}

// Encode reads the file and converts it into content blocks.
//
// Images yield a single ImageBlock carrying the media type of the FINAL
// encoding (a webp re-encoded as JPEG reports image/jpeg). Workbooks yield
// a single TextBlock with a fenced fixed-width table.
func (a *Attachment) Encode() ([]anthropic.ContentBlock, error) {
	raw, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", a.Name, err)
	}

	switch a.Kind {
	case KindImage:
		encoded, mediaType, err := NormalizeImage(raw)
		if err != nil {
			return nil, err
		}
		return []anthropic.ContentBlock{
			anthropic.ImageBlock{
				MediaType: mediaType,
				Data:      encodeBase64(encoded),
			},
		}, nil

	case KindSpreadsheet:
		table, err := renderWorkbook(raw)
		if err != nil {
			return nil, err
		}
		return []anthropic.ContentBlock{
			anthropic.TextBlock{Text: table},
		}, nil

	default:
		return nil, ErrUnsupportedType
	}
}
