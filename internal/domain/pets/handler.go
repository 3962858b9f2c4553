package pets

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petdoc-id/internal/domain/activity"
	"petdoc-id/internal/middleware"
	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/httpjson"
	"petdoc-id/internal/platform/ratelimit"
)

const maxJSONBody = 2 << 20

type HandlerConfig struct {
	// tamaño máximo de la foto en multipart
	MaxUpload int64
}

func (c HandlerConfig) maxUpload() int64 {
	if c.MaxUpload <= 0 {
		return 8 << 20
	}
	return c.MaxUpload
}

// RegisterAdminRoutes monta el CRUD de fichas; el router ya exige rol admin.
func RegisterAdminRoutes(r chi.Router, svc *Service, cfg HandlerConfig) {
	r.Get("/", searchPetsHandler(svc))
	r.Post("/", createPetHandler(svc))

	r.Get("/{id}", getPetHandler(svc))
	r.Put("/{id}", updatePetHandler(svc))
	r.Patch("/{id}", updatePetHandler(svc))
	r.Delete("/{id}", deletePetHandler(svc))

	r.Post("/{id}/photo", attachPhotoHandler(svc, cfg))
}

// petPayload sirve para create y para patch: nil = no enviado.
type petPayload struct {
	Name      *string `json:"name"`
	Species   *string `json:"species"`
	Breed     *string `json:"breed"`
	CoatColor *string `json:"coat_color"`

	Owner1 *string `json:"owner1"`
	Owner2 *string `json:"owner2"`
	Phone1 *string `json:"phone1"`
	Phone2 *string `json:"phone2"`

	BirthDate *string `json:"birth_date"` // texto libre, dd/mm/aaaa
	Sex       *string `json:"sex"`
	Size      *string `json:"size"`
	Neutered  *string `json:"neutered"`
	Pedigree  *string `json:"pedigree"`

	City       *string `json:"city"`
	RegionCode *string `json:"region_code"`

	Microchip    *string `json:"microchip"`
	SocialHandle *string `json:"social_handle"`
	Notes        *string `json:"notes"`
	Email        *string `json:"email"`

	DocumentColor *string `json:"document_color"`
	Status        *string `json:"status"`

	// solo en create: código explícito (importación)
	RegistrationCode *string `json:"registration_code"`
}

func (p petPayload) profile() Profile {
	v := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return Profile{
		Name:          v(p.Name),
		Species:       v(p.Species),
		Breed:         v(p.Breed),
		CoatColor:     v(p.CoatColor),
		Owner1:        v(p.Owner1),
		Owner2:        v(p.Owner2),
		Phone1:        v(p.Phone1),
		Phone2:        v(p.Phone2),
		BirthDate:     v(p.BirthDate),
		Sex:           v(p.Sex),
		Size:          v(p.Size),
		Neutered:      v(p.Neutered),
		Pedigree:      v(p.Pedigree),
		City:          v(p.City),
		RegionCode:    v(p.RegionCode),
		Microchip:     v(p.Microchip),
		SocialHandle:  v(p.SocialHandle),
		Notes:         v(p.Notes),
		Email:         v(p.Email),
		DocumentColor: DocumentColor(v(p.DocumentColor)),
	}
}

func (p petPayload) update() UpdateInput {
	return UpdateInput{
		Name:          p.Name,
		Species:       p.Species,
		Breed:         p.Breed,
		CoatColor:     p.CoatColor,
		Owner1:        p.Owner1,
		Owner2:        p.Owner2,
		Phone1:        p.Phone1,
		Phone2:        p.Phone2,
		BirthDate:     p.BirthDate,
		Sex:           p.Sex,
		Size:          p.Size,
		Neutered:      p.Neutered,
		Pedigree:      p.Pedigree,
		City:          p.City,
		RegionCode:    p.RegionCode,
		Microchip:     p.Microchip,
		SocialHandle:  p.SocialHandle,
		Notes:         p.Notes,
		Email:         p.Email,
		DocumentColor: p.DocumentColor,
		Status:        p.Status,
	}
}

type petResponse struct {
	ID               string `json:"id"`
	RegistrationCode string `json:"registration_code"`
	SequenceNumber   int64  `json:"sequence_number"`

	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	CoatColor string `json:"coat_color"`

	Owner1 string `json:"owner1"`
	Owner2 string `json:"owner2"`
	Phone1 string `json:"phone1"`
	Phone2 string `json:"phone2"`

	BirthDate string `json:"birth_date"`
	Sex       string `json:"sex"`
	Size      string `json:"size"`
	Neutered  string `json:"neutered"`
	Pedigree  string `json:"pedigree"`

	City       string `json:"city"`
	RegionCode string `json:"region_code"`

	Microchip    string `json:"microchip"`
	SocialHandle string `json:"social_handle"`
	Notes        string `json:"notes"`
	Email        string `json:"email"`

	DocumentColor DocumentColor `json:"document_color"`
	Status        Status        `json:"status"`
	PhotoURL      string        `json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:               p.ID,
		RegistrationCode: p.RegistrationCode,
		SequenceNumber:   p.SequenceNumber,
		Name:             p.Name,
		Species:          p.Species,
		Breed:            p.Breed,
		CoatColor:        p.CoatColor,
		Owner1:           p.Owner1,
		Owner2:           p.Owner2,
		Phone1:           p.Phone1,
		Phone2:           p.Phone2,
		BirthDate:        p.BirthDate,
		Sex:              p.Sex,
		Size:             p.Size,
		Neutered:         p.Neutered,
		Pedigree:         p.Pedigree,
		City:             p.City,
		RegionCode:       p.RegionCode,
		Microchip:        p.Microchip,
		SocialHandle:     p.SocialHandle,
		Notes:            p.Notes,
		Email:            p.Email,
		DocumentColor:    p.DocumentColor,
		Status:           p.Status,
		PhotoURL:         p.PhotoURL,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// AdminActor arma el actor de historial a partir de los claims del request.
func AdminActor(r *http.Request) activity.Actor {
	c, _ := middleware.GetClaims(r.Context())
	return activity.Actor{Type: activity.ActorTypeAdmin, ID: c.Subject}
}

// searchPetsHandler
// @Summary Buscar fichas
// @Tags pets
// @Produce json
// @Param name query string false "nombre contiene"
// @Param owner query string false "tutor contiene"
// @Param breed query string false "raza contiene"
// @Success 200 {array} petResponse
// @Router /api/pets [get]
func searchPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.Search(r.Context(), SearchQuery{
			Name:  firstNonEmpty(q.Get("name"), q.Get("nomePet")),
			Owner: firstNonEmpty(q.Get("owner"), q.Get("tutor")),
			Breed: firstNonEmpty(q.Get("breed"), q.Get("raca")),
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

// createPetHandler
// @Summary Crear ficha (admin)
// @Tags pets
// @Accept json
// @Produce json
// @Success 201 {object} petResponse
// @Router /api/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petPayload
		if err := httpjson.DecodeJSON(w, r, maxJSONBody, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}

		in := RegisterInput{
			Profile: req.profile(),
			Channel: ChannelAdmin,
			Actor:   AdminActor(r),
		}
		if req.RegistrationCode != nil {
			in.RegistrationCode = *req.RegistrationCode
		}
		if req.Status != nil {
			in.Status = *req.Status
		}

		p, err := svc.Register(r.Context(), in)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler atiende PUT y PATCH con la misma semántica de patch.
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petPayload
		if err := httpjson.DecodeJSON(w, r, maxJSONBody, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}
		if req.RegistrationCode != nil {
			httpjson.WriteError(w, apperr.Validation("registration_code cannot be changed"))
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req.update(), AdminActor(r))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// attachPhotoHandler
// @Summary Subir/reemplazar foto
// @Tags pets
// @Accept multipart/form-data
// @Param photo formData file true "foto"
// @Success 200 {object} petResponse
// @Router /api/pets/{id}/photo [post]
func attachPhotoHandler(svc *Service, cfg HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseMultipart(w, r, cfg.maxUpload()); err != nil {
			httpjson.WriteError(w, err)
			return
		}
		photo, err := readPhoto(r)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		if photo == nil {
			httpjson.WriteError(w, apperr.Validation("photo is required"))
			return
		}

		p, err := svc.AttachPhoto(r.Context(), chi.URLParam(r, "id"), *photo, AdminActor(r))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// formAliases mapea cada campo a su nombre en el formulario público anterior.
var formAliases = map[string]string{
	"name":           "nomePet",
	"species":        "especie",
	"breed":          "raca",
	"coat_color":     "pelagemCor",
	"owner1":         "tutor1",
	"owner2":         "tutor2",
	"phone1":         "tel1",
	"phone2":         "tel2",
	"birth_date":     "dataNascimento",
	"sex":            "sexo",
	"size":           "porte",
	"neutered":       "castrado",
	"pedigree":       "pedigree",
	"city":           "cidade",
	"region_code":    "estado",
	"microchip":      "microchip",
	"social_handle":  "instagramPet",
	"notes":          "observacoes",
	"email":          "email",
	"document_color": "corDocumento",
}

// PublicCreateHandler
// @Summary Cadastro público (foto obrigatória)
// @Tags public
// @Accept multipart/form-data
// @Param photo formData file true "foto"
// @Success 201 {object} petResponse
// @Failure 429 {object} map[string]string
// @Router /api/pets/public [post]
func PublicCreateHandler(svc *Service, cfg HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseMultipart(w, r, cfg.maxUpload()); err != nil {
			httpjson.WriteError(w, err)
			return
		}

		field := func(name string) string {
			if v := r.FormValue(name); v != "" {
				return v
			}
			return r.FormValue(formAliases[name])
		}

		prof := Profile{
			Name:          field("name"),
			Species:       field("species"),
			Breed:         field("breed"),
			CoatColor:     field("coat_color"),
			Owner1:        field("owner1"),
			Owner2:        field("owner2"),
			Phone1:        field("phone1"),
			Phone2:        field("phone2"),
			BirthDate:     field("birth_date"),
			Sex:           field("sex"),
			Size:          field("size"),
			Neutered:      field("neutered"),
			Pedigree:      field("pedigree"),
			City:          field("city"),
			RegionCode:    field("region_code"),
			Microchip:     field("microchip"),
			SocialHandle:  field("social_handle"),
			Notes:         field("notes"),
			Email:         field("email"),
			DocumentColor: DocumentColor(field("document_color")),
		}
		if strings.TrimSpace(prof.RegionCode) == "" {
			httpjson.WriteError(w, apperr.Validation("region code is required"))
			return
		}

		photo, err := readPhoto(r)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		if photo == nil {
			httpjson.WriteError(w, apperr.Validation("photo is required"))
			return
		}

		p, err := svc.Register(r.Context(), RegisterInput{
			Profile: prof,
			Photo:   photo,
			Channel: ChannelPublic,
			Actor:   activity.Actor{Type: activity.ActorTypePublic, ID: ratelimit.ClientIP(r)},
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func parseMultipart(w http.ResponseWriter, r *http.Request, maxUpload int64) error {
	// margen para los campos de texto además de la foto
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+(1<<20))
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return apperr.Validation("photo too large")
		}
		return apperr.Validation("invalid multipart form")
	}
	return nil
}

// readPhoto devuelve nil si el campo "photo" no vino.
func readPhoto(r *http.Request) (*PhotoUpload, error) {
	f, hdr, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperr.Validation("invalid photo")
	}
	defer f.Close()

	return photoFromPart(f, hdr)
}

func photoFromPart(f multipart.File, hdr *multipart.FileHeader) (*PhotoUpload, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperr.Validation("invalid photo")
	}
	if len(data) == 0 {
		return nil, apperr.Validation("photo is empty")
	}

	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return nil, apperr.Validation("photo must be an image")
	}
	return &PhotoUpload{Data: data, Filename: hdr.Filename, ContentType: ct}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
