package pets

import (
	"strings"
	"time"
)

// DocumentColor elige la variante de plantilla de los documentos.
// @Enum blue, pink
type DocumentColor string

const (
	ColorBlue DocumentColor = "blue"
	ColorPink DocumentColor = "pink"
)

// ParseDocumentColor acepta blue/pink y los valores heredados Azul/Rosa.
// Vacío => blue.
func ParseDocumentColor(s string) (DocumentColor, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "blue", "azul":
		return ColorBlue, true
	case "pink", "rosa":
		return ColorPink, true
	}
	return "", false
}

// Status de producción de los documentos.
// @Enum pending, ready
type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
)

// ParseStatus acepta pending/ready y los valores heredados Pendente/Pronto.
// Vacío => pending.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pending", "pendente":
		return StatusPending, true
	case "ready", "pronto":
		return StatusReady, true
	}
	return "", false
}

// Profile son los datos editables de la ficha. Todo texto libre: la fecha de
// nacimiento se imprime tal cual fue cargada (dd/mm/aaaa).
type Profile struct {
	Name      string
	Species   string
	Breed     string
	CoatColor string

	Owner1 string
	Owner2 string
	Phone1 string
	Phone2 string

	BirthDate string
	Sex       string
	Size      string
	Neutered  string
	Pedigree  string

	City       string
	RegionCode string

	Microchip    string
	SocialHandle string
	Notes        string
	Email        string

	DocumentColor DocumentColor
}

// Pet es la ficha de identidad de una mascota.
type Pet struct {
	ID string

	// Se asigna al crear y nunca se regenera, aunque cambie la región.
	RegistrationCode string
	// 0 cuando el código vino explícito (importación admin).
	SequenceNumber int64

	Profile

	Status Status

	PhotoURL       string
	PhotoStorageID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FirstName es el primer token del nombre; se usa en firmas y posts.
func (p Pet) FirstName() string {
	f := strings.Fields(p.Name)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// Owners devuelve "tutor1 / tutor2" u omite el vacío.
func (p Pet) Owners() string {
	return joinNonEmpty(" / ", p.Owner1, p.Owner2)
}

// Phones devuelve "tel1 / tel2" u omite el vacío.
func (p Pet) Phones() string {
	return joinNonEmpty(" / ", p.Phone1, p.Phone2)
}

func joinNonEmpty(sep string, vals ...string) string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}

func (p *Profile) normalize() {
	for _, f := range []*string{
		&p.Name, &p.Species, &p.Breed, &p.CoatColor,
		&p.Owner1, &p.Owner2, &p.Phone1, &p.Phone2,
		&p.BirthDate, &p.Sex, &p.Size, &p.Neutered, &p.Pedigree,
		&p.City, &p.Microchip, &p.SocialHandle, &p.Notes, &p.Email,
	} {
		*f = strings.TrimSpace(*f)
	}
	p.RegionCode = strings.ToUpper(strings.TrimSpace(p.RegionCode))
}
