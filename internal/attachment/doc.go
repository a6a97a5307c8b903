// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package attachment turns local files into Messages API content blocks.
//
// Supported inputs are raster images (png, jpg, jpeg, webp) and Excel
// workbooks (xlsx). Images are re-encoded until their base64 form fits the
// API size budget; workbooks are rendered as a fixed-width text table.
// Every failure is a typed error so the UI can degrade a turn to text-only
// instead of dropping it.
package attachment
