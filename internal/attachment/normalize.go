// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package attachment

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register webp decoder
)

// Size budget and compression ladder for image normalization.
const (
	// MaxEncodedSize is the budget for the base64-encoded image.
	MaxEncodedSize = 5 * 1024 * 1024 // 5 MiB

	// startQuality is the initial JPEG quality.
	startQuality = 90

	// minQuality is the JPEG quality floor; below it we shrink instead.
	minQuality = 20

	// qualityStep is how much quality drops per attempt.
	qualityStep = 10

	// resizeFactor scales both dimensions per shrink step.
	resizeFactor = 0.9

	// minDimension is the smallest width or height we will shrink to.
	minDimension = 200

	// maxAttempts bounds the re-encode loop. Every attempt strictly lowers
	// quality or dimensions, so hitting this cap means a broken encoder.
	maxAttempts = 64
)

// fitsBudget reports whether raw bytes of length n fit the budget once
// base64-encoded.
func fitsBudget(n, budget int) bool {
	return base64.StdEncoding.EncodedLen(n) <= budget
}

// encodeBase64 returns the standard base64 encoding of data.
func encodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// NormalizeImage re-encodes an image until its base64 form fits the budget.
//
// Strategy, in order:
//   - If the original bytes already fit, they pass through untouched.
//   - JPEG sources walk a quality ladder from 90 down to 20 in steps of 10.
//   - PNG sources stay PNG (lossless) and go straight to shrinking.
//   - Anything else (webp) is converted and follows the JPEG ladder.
//   - When quality bottoms out, dimensions shrink by 0.9 per step. Dropping
//     below 200px on either side fails with ErrCannotCompress.
//
// Returns the encoded bytes and the media type of the final encoding.
func NormalizeImage(raw []byte) ([]byte, string, error) {
	return normalizeImage(raw, MaxEncodedSize)
}

// normalizeImage is NormalizeImage with an injectable budget so the
// compression ladder can be exercised without multi-megabyte fixtures.
func normalizeImage(raw []byte, budget int) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	// Fast path: already small enough, no re-encode.
	if fitsBudget(len(raw), budget) {
		return raw, mediaTypeFor(format), nil
	}

	// PNG stays lossless; everything else becomes JPEG.
	asPNG := format == "png"
	quality := startQuality

	for attempt := 0; attempt < maxAttempts; attempt++ {
		var buf bytes.Buffer
		var mediaType string

		if asPNG {
			if err := png.Encode(&buf, img); err != nil {
				return nil, "", fmt.Errorf("png encode: %w", err)
			}
			mediaType = "image/png"
		} else {
			if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
				return nil, "", fmt.Errorf("jpeg encode: %w", err)
			}
			mediaType = "image/jpeg"
		}

		if fitsBudget(buf.Len(), budget) {
			return buf.Bytes(), mediaType, nil
		}

		// Lossy sources lower quality first, then shrink.
		if !asPNG && quality > minQuality {
			quality -= qualityStep
			continue
		}

		img, err = shrink(img)
		if err != nil {
			return nil, "", err
		}
	}

	return nil, "", ErrCannotCompress
}

// shrink scales an image down by resizeFactor using CatmullRom resampling.
// Fails with ErrCannotCompress once either dimension would fall under
// minDimension.
func shrink(img image.Image) (image.Image, error) {
	bounds := img.Bounds()
	newW := int(float64(bounds.Dx()) * resizeFactor)
	newH := int(float64(bounds.Dy()) * resizeFactor)

	if newW < minDimension || newH < minDimension {
		return nil, ErrCannotCompress
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst, nil
}

// mediaTypeFor maps an image.Decode format name to a MIME type.
func mediaTypeFor(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
