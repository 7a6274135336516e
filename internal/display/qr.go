package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/yeqown/go-qrcode/v2"
)

// quietZone is the number of blank modules framing the symbol.
const quietZone = 2

// matrixWriter renders a QR matrix with Unicode half blocks, packing two
// module rows into each terminal line. Colors are inverted for dark
// terminals: set modules print as spaces inside a lit background.
type matrixWriter struct {
	w io.Writer
}

func (matrixWriter) Close() error { return nil }

func (m matrixWriter) Write(mat qrcode.Matrix) error {
	bitmap := mat.Bitmap()
	set := func(row, col int) bool {
		if row < 0 || row >= len(bitmap) {
			return false
		}
		if col < 0 || col >= len(bitmap[row]) {
			return false
		}
		return bitmap[row][col]
	}

	var b strings.Builder
	for row := -quietZone; row < mat.Height()+quietZone; row += 2 {
		for col := -quietZone; col < mat.Width()+quietZone; col++ {
			top, bottom := set(row, col), set(row+1, col)
			switch {
			case top && bottom:
				b.WriteString(" ")
			case bottom:
				b.WriteString("▀")
			case top:
				b.WriteString("▄")
			default:
				b.WriteString("█")
			}
		}
		b.WriteString("\n")
	}
	_, err := fmt.Fprint(m.w, b.String())
	return err
}

// RenderQR encodes content and writes the symbol to w. Low error correction
// keeps the symbol small enough for the panel at readable module size.
func RenderQR(w io.Writer, content string) error {
	qr, err := qrcode.NewWith(content, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow))
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}
	if err := qr.Save(matrixWriter{w: w}); err != nil {
		return fmt.Errorf("render qr: %w", err)
	}
	return nil
}
