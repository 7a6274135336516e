package display

import (
	"fmt"
	"io"
	"strings"
)

// Panel geometry of the original 128x64 module: 6 text rows of 21 characters
// at the 6x8 font.
const (
	TextRows = 6
	TextCols = 21
)

// Surface is the render contract consumed by the menu and the generation
// orchestrator.
type Surface interface {
	// Clear empties every row.
	Clear()
	// WriteLine replaces row n (0-based) with text. Out-of-range rows are
	// ignored; overlong text is truncated at the panel edge.
	WriteLine(row int, text string)
	// ShowQR renders content as a scannable QR symbol below the text rows.
	ShowQR(content string) error
	// Flush pushes the current frame to the output device.
	Flush() error
}

// Terminal renders the panel as a bordered box on a terminal.
type Terminal struct {
	w    io.Writer
	rows [TextRows]string
}

// NewTerminal creates a Terminal writing frames to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Clear() {
	for i := range t.rows {
		t.rows[i] = ""
	}
}

func (t *Terminal) WriteLine(row int, text string) {
	if row < 0 || row >= TextRows {
		return
	}
	if len(text) > TextCols {
		text = text[:TextCols]
	}
	t.rows[row] = text
}

func (t *Terminal) Flush() error {
	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", TextCols) + "+\n")
	for _, row := range t.rows {
		b.WriteString("|")
		b.WriteString(row)
		b.WriteString(strings.Repeat(" ", TextCols-len(row)))
		b.WriteString("|\n")
	}
	b.WriteString("+" + strings.Repeat("-", TextCols) + "+\n")
	if _, err := fmt.Fprint(t.w, b.String()); err != nil {
		return fmt.Errorf("display flush: %w", err)
	}
	return nil
}

func (t *Terminal) ShowQR(content string) error {
	return RenderQR(t.w, content)
}
