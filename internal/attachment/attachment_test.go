// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package attachment

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
)

// testImage produces a small solid-color image.
func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

// noiseImage produces an incompressible image so JPEG quality actually
// moves the encoded size. Seeded for determinism.
func noiseImage(w, h int) image.Image {
	rnd := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rnd.Intn(256)),
				G: uint8(rnd.Intn(256)),
				B: uint8(rnd.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

// =============================================================================
// STAGING TESTS
// =============================================================================

func TestStage_AllowList(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		kind    Kind
		wantErr error
	}{
		{"png", "a.png", KindImage, nil},
		{"jpg", "b.jpg", KindImage, nil},
		{"jpeg", "c.jpeg", KindImage, nil},
		{"webp", "d.webp", KindImage, nil},
		{"uppercase extension", "e.PNG", KindImage, nil},
		{"xlsx", "f.xlsx", KindSpreadsheet, nil},
		{"pdf rejected", "g.pdf", 0, ErrUnsupportedType},
		{"no extension rejected", "h", 0, ErrUnsupportedType},
		{"gif rejected", "i.gif", 0, ErrUnsupportedType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

			att, err := Stage(path)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.kind, att.Kind)
			assert.Equal(t, tc.file, att.Name)
		})
	}
}

func TestStage_MissingFile(t *testing.T) {
	_, err := Stage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestStage_Directory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pics.png")
	require.NoError(t, os.Mkdir(sub, 0o755))

	_, err := Stage(sub)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

// =============================================================================
// NORMALIZER TESTS
// =============================================================================

func TestNormalizeImage_FastPath(t *testing.T) {
	raw := encodePNG(t, testImage(64, 64))

	out, mediaType, err := NormalizeImage(raw)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, raw, out, "bytes under budget must pass through untouched")
}

func TestNormalizeImage_JPEGFastPath(t *testing.T) {
	raw := encodeJPEG(t, testImage(64, 64))

	out, mediaType, err := NormalizeImage(raw)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mediaType)
	assert.Equal(t, raw, out)
}

func TestNormalizeImage_Corrupt(t *testing.T) {
	_, _, err := NormalizeImage([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrCorruptFile)
}

func TestShrink_RespectsMinDimension(t *testing.T) {
	// 300x300 shrinks to 270x270.
	small, err := shrink(testImage(300, 300))
	require.NoError(t, err)
	assert.Equal(t, 270, small.Bounds().Dx())
	assert.Equal(t, 270, small.Bounds().Dy())

	// 210x210 would shrink to 189, under the 200px floor.
	_, err = shrink(testImage(210, 210))
	assert.ErrorIs(t, err, ErrCannotCompress)

	// A wide strip fails on its short side.
	_, err = shrink(testImage(4000, 220))
	assert.ErrorIs(t, err, ErrCannotCompress)
}

func TestFitsBudget(t *testing.T) {
	// 3 raw bytes encode to 4; the budget is the encoded size.
	assert.True(t, fitsBudget(3, 4))
	assert.False(t, fitsBudget(4, 4))
	assert.True(t, fitsBudget(MaxEncodedSize/4*3, MaxEncodedSize))
	assert.False(t, fitsBudget(MaxEncodedSize, MaxEncodedSize))
}

func TestNormalizeImage_QualityLadder(t *testing.T) {
	raw := encodeJPEG(t, noiseImage(320, 240))

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	sizeAt := func(q int) int {
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, decoded, &jpeg.Options{Quality: q}))
		return buf.Len()
	}

	// A budget the mid-ladder encode fits but the starting quality does not,
	// so at least one quality step must happen before success.
	budget := base64.StdEncoding.EncodedLen(sizeAt(50))
	require.Greater(t, base64.StdEncoding.EncodedLen(len(raw)), budget)
	require.Greater(t, base64.StdEncoding.EncodedLen(sizeAt(90)), budget)

	out, mediaType, err := normalizeImage(raw, budget)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mediaType)
	assert.True(t, fitsBudget(len(out), budget))
	assert.Less(t, len(out), len(raw))
}

func TestNormalizeImage_PNGShrinksToFloor(t *testing.T) {
	// PNG never goes lossy: an impossible budget walks the shrink steps
	// (300 -> 270 -> 243 -> 218) until the 200px floor stops it.
	raw := encodePNG(t, testImage(300, 300))

	_, _, err := normalizeImage(raw, 1)
	assert.ErrorIs(t, err, ErrCannotCompress)
}

func TestNormalizeImage_JPEGExhaustsLadderThenFloor(t *testing.T) {
	// With an impossible budget the quality ladder bottoms out at 20,
	// shrinking takes over, and the dimension floor terminates the loop.
	raw := encodeJPEG(t, noiseImage(400, 400))

	_, _, err := normalizeImage(raw, 1)
	assert.ErrorIs(t, err, ErrCannotCompress)
}

func TestNormalizeImage_FastPathBoundary(t *testing.T) {
	raw := encodePNG(t, testImage(64, 64))

	// A budget of exactly the encoded size passes the original through.
	budget := base64.StdEncoding.EncodedLen(len(raw))
	out, _, err := normalizeImage(raw, budget)
	require.NoError(t, err)
	assert.Equal(t, raw, out)

	// Under budget, a 64px image cannot shrink and must fail.
	_, _, err = normalizeImage(raw, 100)
	assert.ErrorIs(t, err, ErrCannotCompress)
}

// =============================================================================
// ENCODER TESTS
// =============================================================================

func TestEncode_Image(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, encodeJPEG(t, testImage(100, 80)), 0o600))

	att, err := Stage(path)
	require.NoError(t, err)

	blocks, err := att.Encode()
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	img, ok := blocks[0].(anthropic.ImageBlock)
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", img.MediaType)

	decoded, err := base64.StdEncoding.DecodeString(img.Data)
	require.NoError(t, err)
	assert.NotEmpty(t, decoded)
}

func TestEncode_CorruptImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	att, err := Stage(path)
	require.NoError(t, err)

	_, err = att.Encode()
	assert.ErrorIs(t, err, ErrCorruptFile)
}

func TestEncode_Workbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "name"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "count"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "widgets"))
	require.NoError(t, f.SetCellValue(sheet, "B2", 42))
	require.NoError(t, f.SetCellValue(sheet, "A3", "gadgets"))
	require.NoError(t, f.SetCellValue(sheet, "B3", 7))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	att, err := Stage(path)
	require.NoError(t, err)

	blocks, err := att.Encode()
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	text, ok := blocks[0].(anthropic.TextBlock)
	require.True(t, ok)

	assert.Contains(t, text.Text, "```")
	assert.Contains(t, text.Text, "name")
	assert.Contains(t, text.Text, "widgets")
	assert.Contains(t, text.Text, "42")
}

func TestEncode_CorruptWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

	att, err := Stage(path)
	require.NoError(t, err)

	_, err = att.Encode()
	assert.ErrorIs(t, err, ErrCorruptFile)
}

// =============================================================================
// TABLE FORMATTING TESTS
// =============================================================================

func TestFormatTable(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{
			name: "aligned columns",
			rows: [][]string{
				{"name", "count"},
				{"widgets", "42"},
			},
			want: "   name  count\nwidgets     42",
		},
		{
			name: "ragged rows padded",
			rows: [][]string{
				{"a", "b", "c"},
				{"dd"},
			},
			want: " a  b  c\ndd",
		},
		{
			name: "empty",
			rows: nil,
			want: "(empty sheet)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatTable(tc.rows))
		})
	}
}
