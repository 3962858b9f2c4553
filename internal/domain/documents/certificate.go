package documents

func (r *Renderer) renderCertificate(j *job) (*Canvas, error) {
	tpl, err := r.assets.Template(tplCertificate)
	if err != nil {
		return nil, err
	}
	d := newTemplateDrawer(KindCertificate, tpl)
	p := j.pet

	d.photo(j.photo, certificatePhoto)

	f, size := r.fonts.value, certificateValueSize
	d.value("registration_code", f, size, certificateCode, p.RegistrationCode)
	d.value("birth_date", f, size, certificateBirthDate, p.BirthDate)
	d.value("species", f, size, certificateSpecies, p.Species)
	d.value("breed", f, size, certificateBreed, p.Breed)
	d.value("coat_color", f, size, certificateCoat, p.CoatColor)
	d.value("sex", f, size, certificateSex, p.Sex)
	d.value("size", f, size, certificateSize, p.Size)
	d.value("region_code", f, size, certificateRegion, p.RegionCode)
	d.value("city", f, size, certificateCity, p.City)
	d.value("name", f, size, certificateName, p.Name)
	d.valueWidth("owners", f, size, certificateOwners, p.Owners(), certificateOwnersMaxWidth)
	d.valueWidth("notes", f, size, certificateNotes, p.Notes, certificateNotesMaxWidth)

	return d.canvas, nil
}
