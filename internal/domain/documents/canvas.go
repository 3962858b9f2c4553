package documents

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Kind identifica cada documento que se puede renderizar.
type Kind string

const (
	KindIDCard           Kind = "id-card"
	KindCertificate      Kind = "certificate"
	KindVaccinationFront Kind = "vaccination-front"
	KindVaccinationBack  Kind = "vaccination-back"
	KindSocialPost       Kind = "social-post"
)

var Kinds = []Kind{KindIDCard, KindCertificate, KindVaccinationFront, KindVaccinationBack, KindSocialPost}

func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// TextRun es un texto efectivamente dibujado en el lienzo.
type TextRun struct {
	Field string
	Text  string
	X, Y  float64
	Size  float64
}

// Canvas es el resultado de un render: la imagen y los textos que lleva.
type Canvas struct {
	Kind  Kind
	Image *image.RGBA
	Texts []TextRun
}

// Text devuelve el texto dibujado para field, si hubo.
func (c *Canvas) Text(field string) (string, bool) {
	for _, t := range c.Texts {
		if t.Field == field {
			return t.Text, true
		}
	}
	return "", false
}

func (c *Canvas) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, c.Image, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var (
	inkBlack = color.Black
	inkDark  = color.RGBA{0x11, 0x11, 0x11, 0xff}
	inkWhite = color.NRGBA{0xff, 0xff, 0xff, 0xf2}
	inkHalo  = color.White
)

// drawer envuelve el gg.Context de un render y registra los textos.
type drawer struct {
	dc     *gg.Context
	canvas *Canvas
	faces  map[faceKey]font.Face
}

type faceKey struct {
	f    *truetype.Font
	size float64
}

// newDrawer crea un lienzo w x h con bg estirado a ese tamaño (bg puede ser nil).
func newDrawer(kind Kind, bg image.Image, w, h int) *drawer {
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	dc := gg.NewContextForRGBA(rgba)
	if bg != nil {
		if b := bg.Bounds(); b.Dx() != w || b.Dy() != h {
			bg = imaging.Resize(bg, w, h, imaging.Lanczos)
		}
		dc.DrawImage(bg, 0, 0)
	}
	return &drawer{
		dc:     dc,
		canvas: &Canvas{Kind: kind, Image: rgba},
		faces:  make(map[faceKey]font.Face),
	}
}

// newTemplateDrawer usa el tamaño de la plantilla.
func newTemplateDrawer(kind Kind, tpl image.Image) *drawer {
	b := tpl.Bounds()
	return newDrawer(kind, tpl, b.Dx(), b.Dy())
}

func (d *drawer) useFace(f *truetype.Font, size float64) {
	k := faceKey{f, size}
	fc, ok := d.faces[k]
	if !ok {
		fc = face(f, size)
		d.faces[k] = fc
	}
	d.dc.SetFontFace(fc)
}

func (d *drawer) record(field, text string, x, y, size float64) {
	d.canvas.Texts = append(d.canvas.Texts, TextRun{Field: field, Text: text, X: x, Y: y, Size: size})
}

// value dibuja v en mayúsculas en la celda; vacío no dibuja nada.
func (d *drawer) value(field string, f *truetype.Font, size float64, c cell, v string) {
	t := FitChars(v, c.Budget)
	if t == "" {
		return
	}
	d.useFace(f, size)
	d.dc.SetColor(inkBlack)
	d.dc.DrawString(t, c.X, c.Y)
	d.record(field, t, c.X, c.Y, size)
}

// valueWidth es value con límite en píxeles en vez de caracteres.
func (d *drawer) valueWidth(field string, f *truetype.Font, size float64, c cell, v string, maxWidth float64) {
	t := FitChars(v, 0)
	if t == "" {
		return
	}
	d.useFace(f, size)
	t = FitWidth(t, maxWidth, func(s string) float64 {
		w, _ := d.dc.MeasureString(s)
		return w
	})
	d.dc.SetColor(inkBlack)
	d.dc.DrawString(t, c.X, c.Y)
	d.record(field, t, c.X, c.Y, size)
}

// outlined dibuja texto anclado con contorno de radio px y relleno encima.
// Con deg != 0 el texto gira alrededor de (x, y).
func (d *drawer) outlined(field, text string, f *truetype.Font, size, x, y, deg, ax, ay float64, radius int, stroke, fill color.Color) {
	if text == "" {
		return
	}
	d.useFace(f, size)
	px, py := x, y
	if deg != 0 {
		d.dc.Push()
		defer d.dc.Pop()
		d.dc.Translate(x, y)
		d.dc.Rotate(gg.Radians(deg))
		px, py = 0, 0
	}
	if radius > 0 {
		d.dc.SetColor(stroke)
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx*dx+dy*dy > radius*radius {
					continue
				}
				d.dc.DrawStringAnchored(text, px+float64(dx), py+float64(dy), ax, ay)
			}
		}
	}
	d.dc.SetColor(fill)
	d.dc.DrawStringAnchored(text, px, py, ax, ay)
	d.record(field, text, x, y, size)
}

// photo recorta la imagen al slot (cover) con esquinas redondeadas opcionales.
func (d *drawer) photo(img image.Image, s slot) {
	if img == nil {
		return
	}
	fitted := fillSlot(img, s)
	if s.Radius > 0 {
		d.dc.DrawRoundedRectangle(float64(s.X), float64(s.Y), float64(s.W), float64(s.H), s.Radius)
		d.dc.Clip()
		defer d.dc.ResetClip()
	}
	d.dc.DrawImage(fitted, s.X, s.Y)
}

// rotated dibuja img escalada a w x h, centrada en (cx, cy) y girada deg grados
// (positivo = horario).
func (d *drawer) rotated(img image.Image, cx, cy float64, w, h int, deg float64) {
	if img == nil {
		return
	}
	scaled := img
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		scaled = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	d.dc.Push()
	d.dc.Translate(cx, cy)
	d.dc.Rotate(gg.Radians(deg))
	d.dc.DrawImageAnchored(scaled, 0, 0, 0.5, 0.5)
	d.dc.Pop()
}

// fillSlot escala y recorta al centro para cubrir el slot sin deformar.
func fillSlot(img image.Image, s slot) image.Image {
	return imaging.Fill(img, s.W, s.H, imaging.Center, imaging.Lanczos)
}
