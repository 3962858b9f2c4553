package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"petdoc-id/internal/domain/activity"
	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/logger"
	"petdoc-id/internal/platform/metrics"
	"petdoc-id/internal/ports/photos"
)

// CodeAllocator reserva el próximo código de registro de una región.
type CodeAllocator interface {
	NextCode(ctx context.Context, region string) (int64, string, error)
}

// ActivityRecorder agrega entradas al historial de la ficha.
type ActivityRecorder interface {
	Record(ctx context.Context, petID string, typ activity.Type, actor activity.Actor, note string) (activity.Entry, error)
}

type Channel string

const (
	ChannelAdmin  Channel = "admin"
	ChannelPublic Channel = "public"
)

type Service struct {
	repo     Repository
	codes    CodeAllocator
	photos   photos.Storage
	activity ActivityRecorder
	log      logger.Logger
	now      func() time.Time

	// se llaman con el código de registro cuando la ficha cambia o se borra
	listeners []func(code string)
}

func NewService(repo Repository, codes CodeAllocator, store photos.Storage, rec ActivityRecorder, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		codes:    codes,
		photos:   store,
		activity: rec,
		log:      log,
		now:      time.Now,
	}
}

// OnChange registra un callback para invalidar cachés derivadas (lookup).
func (s *Service) OnChange(fn func(code string)) {
	s.listeners = append(s.listeners, fn)
}

// PhotoUpload es una foto recibida del cliente, todavía no guardada.
type PhotoUpload struct {
	Data        []byte
	Filename    string
	ContentType string
}

type RegisterInput struct {
	Profile Profile

	// Si viene, se usa tal cual y no se consume número del contador.
	RegistrationCode string
	Status           string

	Photo   *PhotoUpload
	Channel Channel
	Actor   activity.Actor
}

// Register crea una ficha nueva. La foto se sube antes de tocar el contador,
// así un upload fallido no consume número.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Pet, error) {
	prof := in.Profile
	prof.normalize()

	if prof.RegionCode == "" {
		return Pet{}, apperr.Validation("region code is required")
	}
	color, ok := ParseDocumentColor(string(prof.DocumentColor))
	if !ok {
		return Pet{}, apperr.Validation("document_color must be blue or pink")
	}
	prof.DocumentColor = color

	status, ok := ParseStatus(in.Status)
	if !ok {
		return Pet{}, apperr.Validation("status must be pending or ready")
	}

	var stored photos.Stored
	if in.Photo != nil {
		st, err := s.uploadPhoto(ctx, *in.Photo)
		if err != nil {
			return Pet{}, err
		}
		stored = st
	}

	code := strings.ToUpper(strings.TrimSpace(in.RegistrationCode))
	var seq int64
	if code == "" {
		n, c, err := s.codes.NextCode(ctx, prof.RegionCode)
		if err != nil {
			s.discardPhoto(ctx, stored.ID, "counter failed")
			return Pet{}, err
		}
		seq, code = n, c
	}

	now := s.now().UTC()
	p := Pet{
		ID:               uuid.NewString(),
		RegistrationCode: code,
		SequenceNumber:   seq,
		Profile:          prof,
		Status:           status,
		PhotoURL:         stored.URL,
		PhotoStorageID:   stored.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.discardPhoto(ctx, stored.ID, "create failed")
		if errors.Is(err, apperr.ErrConflict) {
			return Pet{}, apperr.Wrap(apperr.KindConflict, "registration code already exists", err)
		}
		return Pet{}, apperr.Wrap(apperr.KindInternal, "create pet", err)
	}

	channel := in.Channel
	if channel == "" {
		channel = ChannelAdmin
	}
	metrics.PetsRegistered.WithLabelValues(string(channel)).Inc()
	s.record(ctx, p.ID, activity.TypeRegistered, in.Actor, code)

	s.log.Info("pet registered", logger.Fields{
		"pet_id":            p.ID,
		"registration_code": code,
		"channel":           string(channel),
	})
	return p, nil
}

// UpdateInput es un patch real: nil = no tocar.
type UpdateInput struct {
	Name      *string
	Species   *string
	Breed     *string
	CoatColor *string

	Owner1 *string
	Owner2 *string
	Phone1 *string
	Phone2 *string

	BirthDate *string
	Sex       *string
	Size      *string
	Neutered  *string
	Pedigree  *string

	City       *string
	RegionCode *string

	Microchip    *string
	SocialHandle *string
	Notes        *string
	Email        *string

	DocumentColor *string
	Status        *string
}

// Update aplica el patch. El código de registro no se regenera aunque cambie la región.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, actor activity.Actor) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	prevStatus := p.Status

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Name, in.Name)
	set(&p.Species, in.Species)
	set(&p.Breed, in.Breed)
	set(&p.CoatColor, in.CoatColor)
	set(&p.Owner1, in.Owner1)
	set(&p.Owner2, in.Owner2)
	set(&p.Phone1, in.Phone1)
	set(&p.Phone2, in.Phone2)
	set(&p.BirthDate, in.BirthDate)
	set(&p.Sex, in.Sex)
	set(&p.Size, in.Size)
	set(&p.Neutered, in.Neutered)
	set(&p.Pedigree, in.Pedigree)
	set(&p.City, in.City)
	set(&p.RegionCode, in.RegionCode)
	set(&p.Microchip, in.Microchip)
	set(&p.SocialHandle, in.SocialHandle)
	set(&p.Notes, in.Notes)
	set(&p.Email, in.Email)
	p.Profile.normalize()

	if in.RegionCode != nil && p.RegionCode == "" {
		return Pet{}, apperr.Validation("region code cannot be empty")
	}
	if in.DocumentColor != nil {
		c, ok := ParseDocumentColor(*in.DocumentColor)
		if !ok {
			return Pet{}, apperr.Validation("document_color must be blue or pink")
		}
		p.DocumentColor = c
	}
	if in.Status != nil {
		st, ok := ParseStatus(*in.Status)
		if !ok {
			return Pet{}, apperr.Validation("status must be pending or ready")
		}
		p.Status = st
	}

	p.UpdatedAt = s.now().UTC()
	if err := s.save(ctx, p); err != nil {
		return Pet{}, err
	}

	s.record(ctx, p.ID, activity.TypeUpdated, actor, "")
	if p.Status != prevStatus {
		s.record(ctx, p.ID, activity.TypeStatusChanged, actor, string(prevStatus)+" -> "+string(p.Status))
	}
	s.notify(p.RegistrationCode)
	return p, nil
}

func (s *Service) SetStatus(ctx context.Context, id string, status Status, actor activity.Actor) (Pet, error) {
	st := string(status)
	return s.Update(ctx, id, UpdateInput{Status: &st}, actor)
}

// AttachPhoto reemplaza la foto. El upload es fatal; borrar la anterior es best-effort.
func (s *Service) AttachPhoto(ctx context.Context, id string, photo PhotoUpload, actor activity.Actor) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	stored, err := s.uploadPhoto(ctx, photo)
	if err != nil {
		return Pet{}, err
	}

	oldID := p.PhotoStorageID
	p.PhotoURL = stored.URL
	p.PhotoStorageID = stored.ID
	p.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, p); err != nil {
		s.discardPhoto(ctx, stored.ID, "attach failed")
		return Pet{}, err
	}
	if oldID != "" && oldID != stored.ID {
		s.discardPhoto(ctx, oldID, "replaced")
	}

	s.record(ctx, p.ID, activity.TypePhotoAttached, actor, "")
	s.notify(p.RegistrationCode)
	return p, nil
}

// Delete borra la ficha. Si falla el borrado de la foto se loguea y se sigue.
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if p.PhotoStorageID != "" && s.photos != nil {
		err := s.photos.Delete(ctx, p.PhotoStorageID)
		metrics.PhotoOps.WithLabelValues("delete", metrics.Result(err)).Inc()
		if err != nil {
			s.log.Warn("photo delete failed", logger.Fields{
				"pet_id":   p.ID,
				"photo_id": p.PhotoStorageID,
				"error":    err,
			})
		}
	}

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("pet not found")
		}
		return apperr.Wrap(apperr.KindInternal, "delete pet", err)
	}

	s.notify(p.RegistrationCode)
	s.log.Info("pet deleted", logger.Fields{"pet_id": p.ID, "registration_code": p.RegistrationCode})
	return nil
}

// MarkDocumentsIssued deja constancia de la emisión del PDF y opcionalmente
// pasa la ficha a ready.
func (s *Service) MarkDocumentsIssued(ctx context.Context, p Pet, markReady bool, actor activity.Actor) (Pet, error) {
	s.record(ctx, p.ID, activity.TypeDocumentsIssued, actor, "")
	if !markReady || p.Status == StatusReady {
		return p, nil
	}
	return s.SetStatus(ctx, p.ID, StatusReady, actor)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, apperr.NotFound("pet not found")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Pet{}, apperr.NotFound("pet not found")
		}
		return Pet{}, apperr.Wrap(apperr.KindInternal, "get pet", err)
	}
	return p, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (Pet, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Pet{}, apperr.Validation("registration code is required")
	}
	p, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Pet{}, apperr.NotFound("registration not found")
		}
		return Pet{}, apperr.Wrap(apperr.KindInternal, "get pet by code", err)
	}
	return p, nil
}

func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Pet, error) {
	q.Name = strings.TrimSpace(q.Name)
	q.Owner = strings.TrimSpace(q.Owner)
	q.Breed = strings.TrimSpace(q.Breed)
	if q.Limit <= 0 || q.Limit > SearchLimit {
		q.Limit = SearchLimit
	}
	items, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "search pets", err)
	}
	return items, nil
}

func (s *Service) save(ctx context.Context, p Pet) error {
	if err := s.repo.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			return apperr.NotFound("pet not found")
		case errors.Is(err, apperr.ErrConflict):
			return apperr.Wrap(apperr.KindConflict, "registration code already exists", err)
		}
		return apperr.Wrap(apperr.KindInternal, "update pet", err)
	}
	return nil
}

func (s *Service) uploadPhoto(ctx context.Context, ph PhotoUpload) (photos.Stored, error) {
	if len(ph.Data) == 0 {
		return photos.Stored{}, apperr.Validation("photo is empty")
	}
	if s.photos == nil {
		return photos.Stored{}, apperr.New(apperr.KindStorage, "photo storage is not configured")
	}
	st, err := s.photos.Upload(ctx, ph.Data, ph.Filename, ph.ContentType)
	metrics.PhotoOps.WithLabelValues("upload", metrics.Result(err)).Inc()
	if err != nil {
		return photos.Stored{}, apperr.Wrap(apperr.KindStorage, "photo upload failed", err)
	}
	return st, nil
}

// discardPhoto borra un asset huérfano; los errores solo se loguean.
func (s *Service) discardPhoto(ctx context.Context, id, reason string) {
	if id == "" || s.photos == nil {
		return
	}
	err := s.photos.Delete(ctx, id)
	metrics.PhotoOps.WithLabelValues("delete", metrics.Result(err)).Inc()
	if err != nil {
		s.log.Warn("photo cleanup failed", logger.Fields{"photo_id": id, "reason": reason, "error": err})
	}
}

func (s *Service) record(ctx context.Context, petID string, typ activity.Type, actor activity.Actor, note string) {
	if s.activity == nil {
		return
	}
	if _, err := s.activity.Record(ctx, petID, typ, actor, note); err != nil {
		s.log.Warn("activity record failed", logger.Fields{"pet_id": petID, "type": string(typ), "error": err})
	}
}

func (s *Service) notify(code string) {
	for _, fn := range s.listeners {
		fn(code)
	}
}
