package documents

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/skip2/go-qrcode"
)

// QRCode genera un QR (nivel M, sin zona de silencio) de size x size píxeles.
// Cada módulo mide size/módulos.
func QRCode(content string, size int) (*image.Gray, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	bm := q.Bitmap()
	n := len(bm)

	img := image.NewGray(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if n == 0 {
		return img, nil
	}

	scale := float64(size) / float64(n)
	black := image.NewUniform(color.Black)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !bm[row][col] {
				continue
			}
			r := image.Rect(
				int(float64(col)*scale), int(float64(row)*scale),
				int(float64(col+1)*scale), int(float64(row+1)*scale),
			)
			draw.Draw(img, r, black, image.Point{}, draw.Src)
		}
	}
	return img, nil
}
