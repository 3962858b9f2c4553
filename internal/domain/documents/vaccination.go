package documents

func (r *Renderer) renderVaccinationFront(j *job) (*Canvas, error) {
	front, _ := vaccinationTemplates(j.pet.DocumentColor)
	tpl, err := r.assets.Template(front)
	if err != nil {
		return nil, err
	}
	d := newTemplateDrawer(KindVaccinationFront, tpl)
	p := j.pet

	d.photo(j.photo, vaccinationPhoto)

	f, size := r.fonts.value, vaccinationValueSize
	d.value("name", f, size, vaccinationName, p.Name)
	d.value("species", f, size, vaccinationSpecies, p.Species)
	d.value("breed", f, size, vaccinationBreed, p.Breed)
	d.value("coat_color", f, size, vaccinationCoat, p.CoatColor)
	d.value("sex", f, size, vaccinationSex, p.Sex)
	d.value("microchip", f, size, vaccinationMicrochip, p.Microchip)
	d.value("region_code", f, size, vaccinationRegion, p.RegionCode)
	d.value("city", f, size, vaccinationCity, p.City)
	d.value("owners", f, size, vaccinationOwners, p.Owners())
	d.value("phones", f, size, vaccinationPhones, p.Phones())

	// la firma va al final, con contorno blanco para leerse sobre la foto
	d.outlined("signature", p.FirstName(), r.fonts.signature, vaccinationSignatureSize,
		vaccinationSignatureX, vaccinationSignatureY, 0, 0.5, 0,
		vaccinationSignatureStroke, inkWhite, inkBlack)

	return d.canvas, nil
}

func (r *Renderer) renderVaccinationBack(j *job) (*Canvas, error) {
	_, back := vaccinationTemplates(j.pet.DocumentColor)
	tpl, err := r.assets.Template(back)
	if err != nil {
		return nil, err
	}
	return newTemplateDrawer(KindVaccinationBack, tpl).canvas, nil
}
