// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package attachment

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"
)

// renderWorkbook parses an xlsx workbook and renders its first sheet as a
// fixed-width text table wrapped in code fences. Each column is padded to
// its widest cell (header included) and right-aligned; there is no index
// column.
func renderWorkbook(raw []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: workbook has no sheets", ErrCorruptFile)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	return "```\n" + formatTable(rows) + "\n```", nil
}

// formatTable renders rows as a fixed-width table. Short rows are padded
// with empty cells so ragged sheets still line up.
func formatTable(rows [][]string) string {
	if len(rows) == 0 {
		return "(empty sheet)"
	}

	// Column count is the widest row.
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return "(empty sheet)"
	}

	// Width per column, display-width aware for CJK content.
	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for r, row := range rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		var line strings.Builder
		for i := 0; i < cols; i++ {
			if i > 0 {
				line.WriteString("  ")
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			line.WriteString(padLeft(cell, widths[i]))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
	}
	return b.String()
}

// padLeft right-aligns a cell within the given display width.
func padLeft(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
