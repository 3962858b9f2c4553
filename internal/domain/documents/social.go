package documents

import (
	"github.com/fogleman/gg"
)

// renderSocialPost compone el post cuadrado: fondo, foto inclinada, logo,
// miniaturas de los otros documentos y el primer nombre con contorno.
func (r *Renderer) renderSocialPost(j *job, docs Set) (*Canvas, error) {
	bg, err := r.assets.Template(socialTemplate(j.pet.DocumentColor))
	if err != nil {
		return nil, err
	}
	logo, err := r.assets.Template(tplSocialLogo)
	if err != nil {
		return nil, err
	}

	d := newDrawer(KindSocialPost, bg, socialSize, socialSize)

	if j.photo != nil {
		ph := fillSlot(j.photo, slot{W: socialPhotoW, H: socialPhotoH})
		d.dc.Push()
		d.dc.Translate(socialPhotoCX, socialPhotoCY)
		d.dc.Rotate(gg.Radians(socialPhotoDeg))
		d.dc.DrawImage(ph, socialPhotoOffX, socialPhotoOffY)
		d.dc.Pop()
	}

	d.rotated(logo, socialLogoX+socialLogoW/2, socialLogoY+socialLogoH/2, socialLogoW, socialLogoH, 0)

	for _, t := range []struct {
		c  *Canvas
		at thumb
	}{
		{docs.VaccinationFront, socialVaccinationThumb},
		{docs.IDCard, socialIDCardThumb},
		{docs.Certificate, socialCertificateThumb},
	} {
		if t.c == nil {
			continue
		}
		d.rotated(t.c.Image, t.at.CX, t.at.CY, t.at.W, t.at.H, t.at.Deg)
	}

	d.outlined("name", j.pet.FirstName(), r.fonts.signature, socialNameSize,
		socialNameX, socialNameY, socialNameDeg, 0.5, 0.5, socialNameStroke, inkHalo, inkDark)

	return d.canvas, nil
}
