package pets_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"petdoc-id/internal/adapters/storage/memory"
	"petdoc-id/internal/domain/activity"
	"petdoc-id/internal/domain/pets"
	"petdoc-id/internal/domain/registration"
	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/logger"
	"petdoc-id/internal/ports/photos"
)

// fakePhotos guarda en memoria y permite forzar fallas.
type fakePhotos struct {
	mu         sync.Mutex
	n          int
	stored     map[string]bool
	failUpload bool
	failDelete bool
	deleted    []string
}

func newFakePhotos() *fakePhotos { return &fakePhotos{stored: map[string]bool{}} }

func (f *fakePhotos) Upload(_ context.Context, data []byte, filename, _ string) (photos.Stored, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return photos.Stored{}, errors.New("cdn down")
	}
	f.n++
	id := filename + "-" + string(rune('0'+f.n))
	f.stored[id] = true
	return photos.Stored{URL: "https://cdn.test/" + id, ID: id}, nil
}

func (f *fakePhotos) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.failDelete {
		return errors.New("cdn down")
	}
	delete(f.stored, id)
	return nil
}

// countingCodes envuelve el contador para saber si se consumió un número.
type countingCodes struct {
	inner *registration.Service
	calls int
}

func (c *countingCodes) NextCode(ctx context.Context, region string) (int64, string, error) {
	c.calls++
	return c.inner.NextCode(ctx, region)
}

// failingCreateRepo falla siempre en Create.
type failingCreateRepo struct{ pets.Repository }

func (failingCreateRepo) Create(context.Context, pets.Pet) error { return errors.New("db down") }

type fixture struct {
	svc      *pets.Service
	repo     pets.Repository
	photos   *fakePhotos
	codes    *countingCodes
	activity *activity.Service
	logs     *bytes.Buffer
}

func newFixture(t *testing.T, repo pets.Repository) fixture {
	t.Helper()
	if repo == nil {
		repo = memory.NewPetRepo()
	}
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Output: &buf})

	ph := newFakePhotos()
	codes := &countingCodes{inner: registration.NewService(memory.NewCounterStore(), "memory")}
	act := activity.NewService(memory.NewActivityRepo())

	return fixture{
		svc:      pets.NewService(repo, codes, ph, act, log),
		repo:     repo,
		photos:   ph,
		codes:    codes,
		activity: act,
		logs:     &buf,
	}
}

var admin = activity.Actor{Type: activity.ActorTypeAdmin, ID: "admin"}

func TestRegister_AssignsSequentialCodes(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	p1, err := fx.svc.Register(ctx, pets.RegisterInput{Profile: pets.Profile{Name: " Milo ", RegionCode: "rj"}})
	require.NoError(t, err)
	require.Equal(t, "RJ-0001-001", p1.RegistrationCode)
	require.Equal(t, int64(1), p1.SequenceNumber)
	require.Equal(t, "Milo", p1.Name)
	require.Equal(t, pets.ColorBlue, p1.DocumentColor)
	require.Equal(t, pets.StatusPending, p1.Status)

	p2, err := fx.svc.Register(ctx, pets.RegisterInput{Profile: pets.Profile{Name: "Bidu", RegionCode: "RJ", DocumentColor: "Rosa"}})
	require.NoError(t, err)
	require.Equal(t, "RJ-0001-002", p2.RegistrationCode)
	require.Equal(t, pets.ColorPink, p2.DocumentColor)

	entries, err := fx.activity.ListByPet(ctx, p1.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, activity.TypeRegistered, entries[0].Type)
}

func TestRegister_Validation(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	_, err := fx.svc.Register(ctx, pets.RegisterInput{Profile: pets.Profile{Name: "Milo"}})
	require.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = fx.svc.Register(ctx, pets.RegisterInput{Profile: pets.Profile{RegionCode: "SP", DocumentColor: "green"}})
	require.True(t, apperr.Is(err, apperr.KindValidation))

	require.Equal(t, 0, fx.codes.calls)
}

func TestRegister_ExplicitCodeSkipsCounterAndConflicts(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	p, err := fx.svc.Register(ctx, pets.RegisterInput{
		Profile:          pets.Profile{RegionCode: "SP"},
		RegistrationCode: "sp-0042-001",
	})
	require.NoError(t, err)
	require.Equal(t, "SP-0042-001", p.RegistrationCode)
	require.Equal(t, int64(0), p.SequenceNumber)
	require.Equal(t, 0, fx.codes.calls)

	_, err = fx.svc.Register(ctx, pets.RegisterInput{
		Profile:          pets.Profile{RegionCode: "SP"},
		RegistrationCode: "SP-0042-001",
	})
	require.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestRegister_FailedUploadConsumesNoNumber(t *testing.T) {
	fx := newFixture(t, nil)
	fx.photos.failUpload = true

	_, err := fx.svc.Register(context.Background(), pets.RegisterInput{
		Profile: pets.Profile{RegionCode: "SP"},
		Photo:   &pets.PhotoUpload{Data: []byte("jpeg"), Filename: "milo.jpg"},
		Channel: pets.ChannelPublic,
	})
	require.True(t, apperr.Is(err, apperr.KindStorage))
	require.Equal(t, 0, fx.codes.calls)
}

func TestRegister_CreateFailureDiscardsUploadedPhoto(t *testing.T) {
	fx := newFixture(t, failingCreateRepo{memory.NewPetRepo()})

	_, err := fx.svc.Register(context.Background(), pets.RegisterInput{
		Profile: pets.Profile{RegionCode: "SP"},
		Photo:   &pets.PhotoUpload{Data: []byte("jpeg"), Filename: "milo.jpg"},
	})
	require.Error(t, err)
	require.Equal(t, "internal error", apperr.Message(err))
	require.Len(t, fx.photos.deleted, 1)
	require.Empty(t, fx.photos.stored)
}

func TestUpdate_KeepsRegistrationCodeWhenRegionChanges(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	var changed []string
	fx.svc.OnChange(func(code string) { changed = append(changed, code) })

	p, err := fx.svc.Register(ctx, pets.RegisterInput{Profile: pets.Profile{Name: "Milo", RegionCode: "SP"}})
	require.NoError(t, err)

	region := "rj"
	status := "ready"
	name := "Milo Souza"
	up, err := fx.svc.Update(ctx, p.ID, pets.UpdateInput{RegionCode: &region, Status: &status, Name: &name}, admin)
	require.NoError(t, err)
	require.Equal(t, "RJ", up.RegionCode)
	require.Equal(t, "SP-0001-001", up.RegistrationCode)
	require.Equal(t, pets.StatusReady, up.Status)
	require.Equal(t, "Milo Souza", up.Name)
	require.Equal(t, []string{"SP-0001-001"}, changed)

	entries, err := fx.activity.ListByPet(ctx, p.ID, 0)
	require.NoError(t, err)
	types := map[activity.Type]bool{}
	for _, e := range entries {
		types[e.Type] = true
	}
	require.True(t, types[activity.TypeUpdated])
	require.True(t, types[activity.TypeStatusChanged])

	bad := "done"
	_, err = fx.svc.Update(ctx, p.ID, pets.UpdateInput{Status: &bad}, admin)
	require.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = fx.svc.Update(ctx, "missing", pets.UpdateInput{Name: &name}, admin)
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestAttachPhoto_ReplacesAndDeletesPrevious(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	p, err := fx.svc.Register(ctx, pets.RegisterInput{
		Profile: pets.Profile{RegionCode: "SP"},
		Photo:   &pets.PhotoUpload{Data: []byte("a"), Filename: "a.jpg"},
	})
	require.NoError(t, err)
	oldID := p.PhotoStorageID

	up, err := fx.svc.AttachPhoto(ctx, p.ID, pets.PhotoUpload{Data: []byte("b"), Filename: "b.jpg"}, admin)
	require.NoError(t, err)
	require.NotEqual(t, oldID, up.PhotoStorageID)
	require.Equal(t, []string{oldID}, fx.photos.deleted)

	fx.photos.failUpload = true
	_, err = fx.svc.AttachPhoto(ctx, p.ID, pets.PhotoUpload{Data: []byte("c"), Filename: "c.jpg"}, admin)
	require.True(t, apperr.Is(err, apperr.KindStorage))

	got, err := fx.svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, up.PhotoStorageID, got.PhotoStorageID)
}

func TestDelete_PhotoFailureDoesNotBlock(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	p, err := fx.svc.Register(ctx, pets.RegisterInput{
		Profile: pets.Profile{RegionCode: "SP"},
		Photo:   &pets.PhotoUpload{Data: []byte("a"), Filename: "a.jpg"},
	})
	require.NoError(t, err)

	fx.photos.failDelete = true
	require.NoError(t, fx.svc.Delete(ctx, p.ID))

	_, err = fx.svc.GetByID(ctx, p.ID)
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	require.Contains(t, fx.logs.String(), "photo delete failed")

	require.True(t, apperr.Is(fx.svc.Delete(ctx, p.ID), apperr.KindNotFound))
}

func TestMarkDocumentsIssued(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	p, err := fx.svc.Register(ctx, pets.RegisterInput{Profile: pets.Profile{RegionCode: "MG"}})
	require.NoError(t, err)

	same, err := fx.svc.MarkDocumentsIssued(ctx, p, false, admin)
	require.NoError(t, err)
	require.Equal(t, pets.StatusPending, same.Status)

	ready, err := fx.svc.MarkDocumentsIssued(ctx, p, true, admin)
	require.NoError(t, err)
	require.Equal(t, pets.StatusReady, ready.Status)
}

func TestSearch_ClampsLimit(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := fx.svc.Register(ctx, pets.RegisterInput{Profile: pets.Profile{Name: "Milo", RegionCode: "SP"}})
		require.NoError(t, err)
	}

	got, err := fx.svc.Search(ctx, pets.SearchQuery{Name: " mil ", Limit: 10_000})
	require.NoError(t, err)
	require.Len(t, got, 3)
}
