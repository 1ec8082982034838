package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// TableColumn defines a column in a Table.
type TableColumn struct {
	Width      int         // fixed character width
	AlignRight bool        // right-align text within the column
	Style      vaxis.Style // applied to all cells in this column
}

// Table renders rows of text with fixed-width columns using WriteCell.
// Each row is a []string matching the Columns slice.
type Table struct {
	Columns []TableColumn
	Rows    [][]string
	Header  []string // optional header row rendered with AttrDim
	Gap     int      // spaces between columns (default 1)

	// Offset is the index of the first data row drawn. The header stays put.
	Offset int
	// Highlight, when set, marks rows drawn bold in HighlightColor.
	Highlight      func(row int) bool
	HighlightColor vaxis.Color
}

// writeText writes s into surf at (col, row) within maxWidth. If
// right-aligned, text is padded on the left.
func writeText(surf *vxfw.Surface, col, row uint16, maxWidth int, s string, style vaxis.Style, alignRight bool) {
	chars := vaxis.Characters(s)

	displayWidth := 0
	for _, ch := range chars {
		displayWidth += ch.Width
	}

	offset := 0
	if alignRight && displayWidth < maxWidth {
		offset = maxWidth - displayWidth
	}

	pos := offset
	for _, ch := range chars {
		if pos+ch.Width > maxWidth {
			break
		}
		surf.WriteCell(col+uint16(pos), row, vaxis.Cell{
			Character: ch,
			Style:     style,
		})
		pos += ch.Width
	}
}

// MaxOffset returns the largest useful Offset for a viewport of height rows.
func (t *Table) MaxOffset(height int) int {
	if t.Header != nil {
		height--
	}
	if n := len(t.Rows) - height; n > 0 {
		return n
	}
	return 0
}

// Draw renders the table header (if set) and the visible rows.
func (t *Table) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	gap := t.Gap
	if gap == 0 {
		gap = 1
	}

	offset := t.Offset
	if offset > len(t.Rows) {
		offset = len(t.Rows)
	}
	if offset < 0 {
		offset = 0
	}
	rows := t.Rows[offset:]

	totalRows := len(rows)
	if t.Header != nil {
		totalRows++
	}

	height := uint16(totalRows)
	if height > ctx.Max.Height {
		height = ctx.Max.Height
	}

	s := vxfw.NewSurface(ctx.Max.Width, height, t)
	row := uint16(0)

	drawRow := func(cells []string, style func(TableColumn) vaxis.Style) {
		col := uint16(0)
		for i, c := range t.Columns {
			if int(col) >= int(ctx.Max.Width) {
				break
			}
			text := ""
			if i < len(cells) {
				text = cells[i]
			}
			width := c.Width
			if rest := int(ctx.Max.Width) - int(col); width > rest {
				width = rest
			}
			writeText(&s, col, row, width, text, style(c), c.AlignRight)
			col += uint16(c.Width + gap)
		}
		row++
	}

	if t.Header != nil && row < height {
		drawRow(t.Header, func(TableColumn) vaxis.Style {
			return vaxis.Style{Attribute: vaxis.AttrDim}
		})
	}

	for i, cells := range rows {
		if row >= height {
			break
		}
		highlighted := t.Highlight != nil && t.Highlight(offset+i)
		drawRow(cells, func(c TableColumn) vaxis.Style {
			style := c.Style
			if highlighted {
				style.Attribute |= vaxis.AttrBold
				style.Foreground = t.HighlightColor
			}
			return style
		})
	}

	return s, nil
}
