package documents

import (
	"context"
	"image"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"petdoc-id/internal/domain/pets"
	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/logger"
	"petdoc-id/internal/platform/metrics"
)

const tracerName = "petdoc-id/internal/domain/documents"

// issueDateLayout es dd/mm/aaaa, como se imprime en la carteira.
const issueDateLayout = "02/01/2006"

type Renderer struct {
	assets *Assets
	fonts  *Fonts
	log    logger.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func NewRenderer(assets *Assets, fonts *Fonts, log logger.Logger) *Renderer {
	if log == nil {
		log = logger.Nop()
	}
	return &Renderer{
		assets: assets,
		fonts:  fonts,
		log:    log,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
}

// Set son todos los documentos de una ficha.
type Set struct {
	IDCard           *Canvas
	Certificate      *Canvas
	VaccinationFront *Canvas
	VaccinationBack  *Canvas
	SocialPost       *Canvas
}

func (s Set) Get(k Kind) *Canvas {
	switch k {
	case KindIDCard:
		return s.IDCard
	case KindCertificate:
		return s.Certificate
	case KindVaccinationFront:
		return s.VaccinationFront
	case KindVaccinationBack:
		return s.VaccinationBack
	case KindSocialPost:
		return s.SocialPost
	}
	return nil
}

// Pages arma las páginas del PDF en el orden de impresión. El post para redes
// no va al PDF.
func (s Set) Pages() []Page {
	pages := make([]Page, 0, 4)
	if s.IDCard != nil {
		pages = append(pages, Page{Canvas: s.IDCard, Preset: PresetIDCard})
	}
	if s.Certificate != nil {
		pages = append(pages, Page{Canvas: s.Certificate, Preset: PresetA4Portrait})
	}
	if s.VaccinationFront != nil {
		pages = append(pages, Page{Canvas: s.VaccinationFront, Preset: PresetA4Landscape})
	}
	if s.VaccinationBack != nil {
		pages = append(pages, Page{Canvas: s.VaccinationBack, Preset: PresetA4Landscape})
	}
	return pages
}

// job es el estado de un render: la ficha, la foto ya cargada y la fecha de
// expedición.
type job struct {
	ctx    context.Context
	pet    pets.Pet
	photo  image.Image
	issued time.Time
}

func (r *Renderer) newJob(ctx context.Context, p pets.Pet) *job {
	j := &job{ctx: ctx, pet: p, issued: p.CreatedAt}
	if j.issued.IsZero() {
		j.issued = r.now()
	}

	if p.PhotoURL != "" {
		img, err := r.assets.Photo(ctx, p.PhotoURL)
		if err != nil {
			r.log.Warn("pet photo unavailable, rendering without it", logger.Fields{
				"pet_id":    p.ID,
				"photo_url": p.PhotoURL,
				"error":     err,
			})
		} else {
			j.photo = img
		}
	}
	return j
}

// Render genera un documento. El post para redes necesita los demás como
// miniaturas, así que los renderiza todos.
func (r *Renderer) Render(ctx context.Context, p pets.Pet, kind Kind) (*Canvas, error) {
	if _, ok := ParseKind(string(kind)); !ok {
		return nil, apperr.NotFound("unknown document kind")
	}
	if kind == KindSocialPost {
		set, err := r.RenderAll(ctx, p)
		if err != nil {
			return nil, err
		}
		return set.SocialPost, nil
	}
	return r.render(r.newJob(ctx, p), kind, Set{})
}

// printKinds son los documentos que van al PDF, en orden de impresión.
var printKinds = []Kind{KindIDCard, KindCertificate, KindVaccinationFront, KindVaccinationBack}

// RenderAll genera el juego completo con una sola descarga de la foto.
func (r *Renderer) RenderAll(ctx context.Context, p pets.Pet) (Set, error) {
	j := r.newJob(ctx, p)
	set, err := r.renderKinds(j, printKinds)
	if err != nil {
		return Set{}, err
	}
	if set.SocialPost, err = r.render(j, KindSocialPost, set); err != nil {
		return Set{}, err
	}
	return set, nil
}

// RenderPrintable genera solo los documentos del PDF; el post para redes
// queda afuera y sus plantillas no se cargan.
func (r *Renderer) RenderPrintable(ctx context.Context, p pets.Pet) (Set, error) {
	return r.renderKinds(r.newJob(ctx, p), printKinds)
}

func (r *Renderer) renderKinds(j *job, kinds []Kind) (Set, error) {
	var set Set
	for _, k := range kinds {
		c, err := r.render(j, k, set)
		if err != nil {
			return Set{}, err
		}
		switch k {
		case KindIDCard:
			set.IDCard = c
		case KindCertificate:
			set.Certificate = c
		case KindVaccinationFront:
			set.VaccinationFront = c
		case KindVaccinationBack:
			set.VaccinationBack = c
		case KindSocialPost:
			set.SocialPost = c
		}
	}
	return set, nil
}

func (r *Renderer) render(j *job, kind Kind, prev Set) (c *Canvas, err error) {
	_, span := r.tracer.Start(j.ctx, "documents.render", trace.WithAttributes(
		attribute.String("document.kind", string(kind)),
		attribute.String("pet.registration_code", j.pet.RegistrationCode),
	))
	start := time.Now()
	defer func() {
		metrics.RenderDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
		metrics.DocumentsRendered.WithLabelValues(string(kind), metrics.Result(err)).Inc()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, apperr.Message(err))
		}
		span.End()
	}()

	switch kind {
	case KindIDCard:
		return r.renderIDCard(j)
	case KindCertificate:
		return r.renderCertificate(j)
	case KindVaccinationFront:
		return r.renderVaccinationFront(j)
	case KindVaccinationBack:
		return r.renderVaccinationBack(j)
	case KindSocialPost:
		return r.renderSocialPost(j, prev)
	}
	return nil, apperr.NotFound("unknown document kind")
}
