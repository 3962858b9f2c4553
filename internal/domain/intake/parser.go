// Package intake convierte el mensaje de cadastro ("Etiqueta: valor" por línea)
// en un borrador de ficha, con avisos para lo que haya que revisar.
package intake

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Draft usa los mismos nombres JSON que el alta de fichas, así el resultado
// se puede enviar tal cual a POST /api/pets.
type Draft struct {
	Name          string `json:"name"`
	Species       string `json:"species"`
	Breed         string `json:"breed"`
	CoatColor     string `json:"coat_color"`
	BirthDate     string `json:"birth_date"`
	Sex           string `json:"sex"`
	Size          string `json:"size"`
	Neutered      string `json:"neutered"`
	Pedigree      string `json:"pedigree"`
	City          string `json:"city"`
	RegionCode    string `json:"region_code"`
	Owner1        string `json:"owner1"`
	Owner2        string `json:"owner2"`
	Microchip     string `json:"microchip"`
	Phone1        string `json:"phone1"`
	Phone2        string `json:"phone2"`
	SocialHandle  string `json:"social_handle"`
	Notes         string `json:"notes"`
	Email         string `json:"email"`
	DocumentColor string `json:"document_color"`
}

type Result struct {
	Draft    Draft    `json:"data"`
	Warnings []string `json:"warnings"`
}

type field struct {
	keys []string
	name string
	set  func(d *Draft) *string
}

// El orden importa: gana la primera entrada cuyo key coincide o es prefijo.
var fields = []field{
	{[]string{"nome do pet", "nome pet"}, "name", func(d *Draft) *string { return &d.Name }},
	{[]string{"especie"}, "species", func(d *Draft) *string { return &d.Species }},
	{[]string{"raca"}, "breed", func(d *Draft) *string { return &d.Breed }},
	{[]string{"pelagem", "pelagem cor"}, "coat_color", func(d *Draft) *string { return &d.CoatColor }},
	{[]string{"data de nascimento", "nascimento"}, "birth_date", func(d *Draft) *string { return &d.BirthDate }},
	{[]string{"sexo"}, "sex", func(d *Draft) *string { return &d.Sex }},
	{[]string{"porte"}, "size", func(d *Draft) *string { return &d.Size }},
	{[]string{"castrado", "castrada", "castradoa"}, "neutered", func(d *Draft) *string { return &d.Neutered }},
	{[]string{"pedigree"}, "pedigree", func(d *Draft) *string { return &d.Pedigree }},
	{[]string{"cidade"}, "city", func(d *Draft) *string { return &d.City }},
	{[]string{"estado", "uf"}, "region_code", func(d *Draft) *string { return &d.RegionCode }},
	{[]string{"tutora 1", "tutor 1", "tutora1", "tutor1"}, "owner1", func(d *Draft) *string { return &d.Owner1 }},
	{[]string{"tutora 2", "tutor 2", "tutora2", "tutor2"}, "owner2", func(d *Draft) *string { return &d.Owner2 }},
	{[]string{"microchip"}, "microchip", func(d *Draft) *string { return &d.Microchip }},
	{[]string{"telefone 1", "telefone1", "tel 1", "tel1", "celular 1", "celular1"}, "phone1", func(d *Draft) *string { return &d.Phone1 }},
	{[]string{"telefone 2", "telefone2", "tel 2", "tel2", "celular 2", "celular2"}, "phone2", func(d *Draft) *string { return &d.Phone2 }},
	{[]string{"telefone", "tel", "celular", "whatsapp", "zap"}, "phone1", func(d *Draft) *string { return &d.Phone1 }},
	{[]string{"instagram do pet", "instagram pet", "instagram"}, "social_handle", func(d *Draft) *string { return &d.SocialHandle }},
	{[]string{"sinais caracteristicos", "observacoes", "observacao"}, "notes", func(d *Draft) *string { return &d.Notes }},
	{[]string{"email", "e mail"}, "email", func(d *Draft) *string { return &d.Email }},
	{[]string{"cor dos documentos", "cor do documento", "cor documentos", "cor"}, "document_color", func(d *Draft) *string { return &d.DocumentColor }},
}

var sectionHeaders = map[string]bool{
	"dados do pet":       true,
	"tutores":            true,
	"outras informacoes": true,
}

var regionNames = map[string]string{
	"sao paulo":         "SP",
	"rio de janeiro":    "RJ",
	"minas gerais":      "MG",
	"parana":            "PR",
	"santa catarina":    "SC",
	"rio grande do sul": "RS",
	"bahia":             "BA",
}

var (
	parensRe  = regexp.MustCompile(`\(.*?\)`)
	nonWordRe = regexp.MustCompile(`[^\w\s]`)
	spacesRe  = regexp.MustCompile(`\s+`)
)

// stripMarks quita los diacríticos (NFD + descartar marcas combinantes).
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeLabel deja la etiqueta comparable: sin paréntesis, minúsculas,
// sin acentos ni puntuación y con espacios simples.
func NormalizeLabel(label string) string {
	s := parensRe.ReplaceAllString(label, "")
	s = strings.ToLower(s)
	s = stripMarks(s)
	s = nonWordRe.ReplaceAllString(s, "")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func lookupField(label string) (field, bool) {
	for _, f := range fields {
		for _, k := range f.keys {
			if label == k || strings.HasPrefix(label, k) {
				return f, true
			}
		}
	}
	return field{}, false
}

// Parse nunca falla: lo que no entiende lo reporta como aviso.
func Parse(text string) Result {
	var d Draft
	warnings := make([]string, 0)

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		idx := strings.LastIndex(line, ":")
		if idx < 0 {
			continue
		}
		raw := line[:idx]
		val := strings.TrimSpace(line[idx+1:])

		label := NormalizeLabel(raw)
		if sectionHeaders[label] {
			continue
		}

		f, ok := lookupField(label)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unrecognized field: %q", strings.TrimSpace(raw)))
			continue
		}
		*f.set(&d) = val
	}

	d.Neutered = NormalizeYesNo(d.Neutered)
	d.Pedigree = NormalizeYesNo(d.Pedigree)
	d.DocumentColor = NormalizeColor(d.DocumentColor)

	if h := strings.TrimSpace(d.SocialHandle); h != "" && !strings.HasPrefix(h, "@") {
		d.SocialHandle = "@" + h
		warnings = append(warnings, fmt.Sprintf("social handle had no \"@\", adjusted to %s", d.SocialHandle))
	}

	if d.RegionCode != "" {
		before := d.RegionCode
		d.RegionCode = NormalizeRegion(d.RegionCode)
		if before != d.RegionCode {
			warnings = append(warnings, fmt.Sprintf("region normalized: %q -> %q", before, d.RegionCode))
		}
		if utf8.RuneCountInString(d.RegionCode) > 2 {
			warnings = append(warnings, fmt.Sprintf("region looks spelled out (%q), use the two-letter code (e.g. SP)", d.RegionCode))
		}
	}

	required := []struct {
		name string
		val  string
	}{
		{"name", d.Name},
		{"species", d.Species},
		{"breed", d.Breed},
		{"coat_color", d.CoatColor},
		{"birth_date", d.BirthDate},
		{"sex", d.Sex},
		{"size", d.Size},
		{"neutered", d.Neutered},
		{"city", d.City},
		{"region_code", d.RegionCode},
		{"owner1", d.Owner1},
		{"document_color", d.DocumentColor},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			warnings = append(warnings, "required field is empty: "+r.name)
		}
	}

	if d.DocumentColor != "blue" && d.DocumentColor != "pink" {
		warnings = append(warnings, fmt.Sprintf("invalid document color %q, use blue (azul) or pink (rosa)", d.DocumentColor))
	}

	return Result{Draft: d, Warnings: warnings}
}

// NormalizeYesNo lleva sim/s/yes/y a "Sim" y nao/não/n/no a "Não".
func NormalizeYesNo(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	switch s {
	case "":
		return ""
	case "sim", "s", "yes", "y":
		return "Sim"
	case "nao", "não", "n", "no":
		return "Não"
	}
	return strings.TrimSpace(v)
}

// NormalizeColor: vacío o "a..." => blue, "r..." => pink, "p..." => pink.
// Lo demás se devuelve tal cual para que el aviso lo muestre.
func NormalizeColor(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	switch {
	case s == "", strings.HasPrefix(s, "a"), s == "blue":
		return "blue"
	case strings.HasPrefix(s, "r"), s == "pink":
		return "pink"
	}
	return strings.TrimSpace(v)
}

// NormalizeRegion acepta la sigla o el nombre del estado escrito por extenso.
func NormalizeRegion(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) == 2 {
		return strings.ToUpper(s)
	}
	if code, ok := regionNames[stripMarks(strings.ToLower(s))]; ok {
		return code
	}
	return s
}
