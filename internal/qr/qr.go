// Package qr renders a pairing payload as a QR code. Rendering is a pure
// function of the payload string; nothing here knows about pairing
// semantics or the UI.
package qr

import (
	qrcode "github.com/skip2/go-qrcode"
)

// DefaultPNGSize is the pixel edge length used when exporting an image.
const DefaultPNGSize = 380

// Terminal renders the payload as half-height block art suitable for a
// terminal. The output is scannable directly off the screen on most
// terminal color schemes.
func Terminal(payload string) (string, error) {
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return "", err
	}
	return code.ToSmallString(false), nil
}

// PNG encodes the payload as a PNG image with the given pixel edge length.
// size <= 0 uses DefaultPNGSize.
func PNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultPNGSize
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}
