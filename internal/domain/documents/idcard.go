package documents

import (
	"strings"

	"petdoc-id/internal/domain/pets"
)

func (r *Renderer) renderIDCard(j *job) (*Canvas, error) {
	tpl, err := r.assets.Template(idCardTemplate(j.pet.DocumentColor))
	if err != nil {
		return nil, err
	}
	d := newTemplateDrawer(KindIDCard, tpl)
	p := j.pet

	// frente: la foto va girada -90° dentro del slot
	if j.photo != nil {
		s := idCardPhoto
		cx := float64(s.X) + float64(s.W)/2
		cy := float64(s.Y) + float64(s.H)/2
		d.rotated(fillSlot(j.photo, s), cx, cy, s.W, s.H, -90)
	}

	if sig := p.FirstName(); sig != "" {
		d.useFace(r.fonts.signature, idCardSignatureSize)
		d.dc.SetColor(inkBlack)
		d.dc.DrawStringAnchored(sig, idCardSignatureX, idCardSignatureY, 0.5, 0)
		d.record("signature", sig, idCardSignatureX, idCardSignatureY, idCardSignatureSize)
	}

	// verso
	f, size := r.fonts.value, idCardValueSize
	d.value("name", f, size, idCardName, p.Name)
	d.value("registration_code", f, size, idCardCode, p.RegistrationCode)
	d.value("birth_date", f, size, idCardBirthDate, p.BirthDate)
	d.value("issue_date", f, size, idCardIssueDate, j.issued.Format(issueDateLayout))
	d.value("owners", f, size, idCardOwners, p.Owners())
	d.value("species", f, size, idCardSpecies, p.Species)
	d.value("birthplace", f, size, idCardBirthplace, birthplace(p))
	d.value("breed", f, size, idCardBreed, p.Breed)
	d.value("sex", f, size, idCardSex, p.Sex)
	d.value("size", f, size, idCardSize, p.Size)
	d.value("neutered", f, size, idCardNeutered, p.Neutered)
	d.value("coat_color", f, size, idCardCoat, p.CoatColor)
	d.value("pedigree", f, size, idCardPedigree, p.Pedigree)
	d.value("social_handle", f, size, idCardSocial, p.SocialHandle)

	return d.canvas, nil
}

// birthplace es "ciudad / UF" omitiendo lo vacío.
func birthplace(p pets.Pet) string {
	parts := make([]string, 0, 2)
	for _, v := range []string{p.City, p.RegionCode} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " / ")
}
