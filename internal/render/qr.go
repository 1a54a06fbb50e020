package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// QRCodePNG encodes content as a square QR code of size pixels.
func QRCodePNG(content string, size int) ([]byte, error) {
	const op = "render.QRCodePNG"

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode: %w", op, err)
	}

	code, err = barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to scale: %w", op, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("%s: failed to write png: %w", op, err)
	}
	return buf.Bytes(), nil
}
