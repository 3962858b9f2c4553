package documents

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/logger"
	"petdoc-id/internal/platform/metrics"
)

// Preset define cómo se ubica un lienzo en su página.
type Preset string

const (
	PresetIDCard      Preset = "id-card"
	PresetA4Portrait  Preset = "a4-portrait"
	PresetA4Landscape Preset = "a4-landscape"
)

// Medidas en mm.
const (
	a4W = 210.0
	a4H = 297.0

	// carteira calibrada para impresión, ya girada
	idCardW = 102.22
	idCardH = 210.0

	padPortrait  = 8.0
	padLandscape = 15.0
	padDefault   = 5.0

	mmPerPx = 25.4 / 96

	qrPixels = 180
)

type Page struct {
	Canvas *Canvas
	Preset Preset
}

type Document struct {
	Bytes     []byte
	PageCount int
}

// CoverConfig es el contenido configurable de la portada.
type CoverConfig struct {
	// BaseURL arma el destino por defecto del QR: {BaseURL}/r/{code}.
	BaseURL      string
	SocialURL    string
	StoreURL     string
	DonationInfo string
}

type Assembler struct {
	assets *Assets
	cover  CoverConfig
	log    logger.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func NewAssembler(assets *Assets, cover CoverConfig, log logger.Logger) *Assembler {
	if log == nil {
		log = logger.Nop()
	}
	return &Assembler{
		assets: assets,
		cover:  cover,
		log:    log,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
}

// DefaultQRTarget es la URL corta que redirige a la consulta pública.
func (a *Assembler) DefaultQRTarget(code string) string {
	return strings.TrimRight(a.cover.BaseURL, "/") + "/r/" + url.PathEscape(code)
}

// Build arma el PDF: portada con QR y después una página por lienzo.
func (a *Assembler) Build(ctx context.Context, pages []Page, registrationCode, qrTarget string) (doc Document, err error) {
	_, span := a.tracer.Start(ctx, "documents.pdf", trace.WithAttributes(
		attribute.Int("pdf.pages", len(pages)),
	))
	defer func() {
		metrics.PDFBuilds.WithLabelValues(metrics.Result(err)).Inc()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, apperr.Message(err))
		}
		span.End()
	}()

	if len(pages) == 0 {
		return Document{}, apperr.Validation("at least one page is required")
	}
	for i, p := range pages {
		if p.Canvas == nil || p.Canvas.Image == nil {
			return Document{}, apperr.Validation(fmt.Sprintf("page %d has no canvas", i+1))
		}
	}
	code := strings.ToUpper(strings.TrimSpace(registrationCode))
	if code == "" {
		return Document{}, apperr.Validation("registration code is required")
	}
	qrTarget = strings.TrimSpace(qrTarget)
	if qrTarget == "" {
		if strings.TrimSpace(a.cover.BaseURL) == "" {
			return Document{}, apperr.Validation("qr target requires a public base url")
		}
		qrTarget = a.DefaultQRTarget(code)
	}
	span.SetAttributes(attribute.String("pet.registration_code", code))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(a.now())
	pdf.SetTitle("PetDoc ID "+code, true)
	pdf.SetAutoPageBreak(false, 0)

	if err := a.writeCover(pdf, qrTarget); err != nil {
		return Document{}, err
	}

	for i, p := range pages {
		if err := addCanvasPage(pdf, fmt.Sprintf("page-%d", i+1), p); err != nil {
			return Document{}, apperr.Wrap(apperr.KindRender, "pdf page failed", err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Document{}, apperr.Wrap(apperr.KindRender, "pdf output failed", err)
	}

	a.log.Debug("pdf built", logger.Fields{"registration_code": code, "pages": pdf.PageCount(), "bytes": buf.Len()})
	return Document{Bytes: buf.Bytes(), PageCount: pdf.PageCount()}, nil
}

type coverLine struct {
	text string
	link string
}

func (a *Assembler) coverLines() []coverLine {
	lines := []coverLine{
		{text: "Oi, Aumigo!"},
		{},
		{text: "Obrigado por cadastrar seu pet no PetDocId"},
		{text: "Seguem os documentos do seu pet."},
		{},
		{text: "Caso queira consultar no portal, basta ler o QR Code com seu celular"},
		{text: "ou informar o número de registro no nosso portal."},
		{},
	}
	if v := strings.TrimSpace(a.cover.DonationInfo); v != "" {
		lines = append(lines,
			coverLine{text: "Nosso serviço é gratuito, mas se quiser colaborar com qualquer valor:"},
			coverLine{text: v},
			coverLine{},
		)
	}
	if v := strings.TrimSpace(a.cover.SocialURL); v != "" {
		lines = append(lines, coverLine{text: "Siga nosso Instagram:"}, coverLine{text: v, link: v}, coverLine{})
	}
	if v := strings.TrimSpace(a.cover.StoreURL); v != "" {
		lines = append(lines, coverLine{text: "Visite também a nossa loja online:"}, coverLine{text: v, link: v}, coverLine{})
	}
	return append(lines, coverLine{text: "Qualquer dúvida, estamos por aqui"})
}

// writeCover dibuja la portada: QR arriba a la derecha, texto con links,
// logo y una línea separadora.
func (a *Assembler) writeCover(pdf *fpdf.Fpdf, qrTarget string) error {
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()

	qr, err := QRCode(qrTarget, qrPixels)
	if err != nil {
		return apperr.Wrap(apperr.KindRender, "qr code failed", err)
	}
	if err := placeImage(pdf, "cover-qr", qr, pageW-135, 15, 60, 60); err != nil {
		return apperr.Wrap(apperr.KindRender, "qr code failed", err)
	}

	logo, err := a.assets.Template(tplCoverLogo)
	if err != nil {
		return err
	}
	const logoW, logoH = 80.0, 70.0
	if err := placeImage(pdf, "cover-logo", logo, pageW-logoW-20, 160, logoW, logoH); err != nil {
		return apperr.Wrap(apperr.KindRender, "cover logo failed", err)
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 12)
	const x, lineH = 20.0, 6.0
	y := 100.0
	for _, l := range a.coverLines() {
		if l.link == "" {
			pdf.SetTextColor(0, 0, 0)
			pdf.Text(x, y, tr(l.text))
		} else {
			pdf.SetTextColor(0, 0, 255)
			pdf.Text(x, y, tr(l.text))
			w := pdf.GetStringWidth(tr(l.text))
			pdf.SetDrawColor(0, 0, 255)
			pdf.Line(x, y+1, x+w, y+1)
			pdf.LinkString(x, y-lineH+1, w, lineH, l.link)
			pdf.SetTextColor(0, 0, 0)
		}
		y += lineH
	}

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(20, 265, pageW-20, 265)

	if err := pdf.Error(); err != nil {
		return apperr.Wrap(apperr.KindRender, "pdf cover failed", err)
	}
	return nil
}

func addCanvasPage(pdf *fpdf.Fpdf, name string, p Page) error {
	if p.Preset == PresetIDCard {
		// la carteira va girada 90° horario, centrada en A4 vertical
		rotated := imaging.Rotate270(p.Canvas.Image)
		addPage(pdf, a4W, a4H)
		return placeImage(pdf, name, rotated, (a4W-idCardW)/2, (a4H-idCardH)/2, idCardW, idCardH)
	}

	b := p.Canvas.Image.Bounds()
	pageW, pageH, pad := presetPage(p.Preset, b.Dx(), b.Dy())
	addPage(pdf, pageW, pageH)
	x, y, w, h := fitCentered(pageW, pageH, pad, float64(b.Dx()), float64(b.Dy()))
	return placeImage(pdf, name, p.Canvas.Image, x, y, w, h)
}

// presetPage devuelve tamaño de página y margen en mm. Un preset desconocido
// usa el tamaño del lienzo a 96 dpi.
func presetPage(preset Preset, pxW, pxH int) (w, h, pad float64) {
	switch preset {
	case PresetA4Portrait:
		return a4W, a4H, padPortrait
	case PresetA4Landscape:
		return a4H, a4W, padLandscape
	}
	return float64(pxW) * mmPerPx, float64(pxH) * mmPerPx, padDefault
}

// fitCentered escala imgW x imgH (manteniendo proporción) al área útil de la
// página y lo centra.
func fitCentered(pageW, pageH, pad, imgW, imgH float64) (x, y, w, h float64) {
	maxW := pageW - 2*pad
	maxH := pageH - 2*pad
	ratio := imgW / imgH

	w = maxW
	h = w / ratio
	if h > maxH {
		h = maxH
		w = h * ratio
	}
	return (pageW - w) / 2, (pageH - h) / 2, w, h
}

func addPage(pdf *fpdf.Fpdf, w, h float64) {
	if w > h {
		pdf.AddPageFormat("L", fpdf.SizeType{Wd: h, Ht: w})
		return
	}
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
}

func placeImage(pdf *fpdf.Fpdf, name string, img image.Image, x, y, w, h float64) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &buf)
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return pdf.Error()
}
