package intake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullMessage = `*DADOS DO PET*
Nome do pet: Thor
Espécie: Cachorro
Raça: Golden Retriever
Pelagem (cor): Dourada
Data de nascimento: 10/02/2021
Sexo: Macho
Porte: Grande
Castrado(a): sim
Pedigree: não
Cidade: Niterói
Estado: Rio de Janeiro
*TUTORES*
Tutora 1: Ana Souza
Tutor 2: Bruno Lima
Telefone 1: (21) 99999-0000
*OUTRAS INFORMAÇÕES*
Instagram do pet: thor.golden
Microchip: 985112003456789
Cor dos documentos: Rosa
Horário: 10:30`

func TestParse_FullMessage(t *testing.T) {
	res := Parse(fullMessage)
	d := res.Draft

	assert.Equal(t, "Thor", d.Name)
	assert.Equal(t, "Cachorro", d.Species)
	assert.Equal(t, "Golden Retriever", d.Breed)
	assert.Equal(t, "Dourada", d.CoatColor)
	assert.Equal(t, "10/02/2021", d.BirthDate)
	assert.Equal(t, "Sim", d.Neutered)
	assert.Equal(t, "Não", d.Pedigree)
	assert.Equal(t, "Niterói", d.City)
	assert.Equal(t, "RJ", d.RegionCode)
	assert.Equal(t, "Ana Souza", d.Owner1)
	assert.Equal(t, "Bruno Lima", d.Owner2)
	assert.Equal(t, "(21) 99999-0000", d.Phone1)
	assert.Equal(t, "@thor.golden", d.SocialHandle)
	assert.Equal(t, "985112003456789", d.Microchip)
	assert.Equal(t, "pink", d.DocumentColor)

	// "Horário: 10:30" se corta en el último ":" => etiqueta "Horário: 10"
	require.Len(t, res.Warnings, 3)
	assert.Contains(t, res.Warnings[0], "unrecognized field")
	assert.Contains(t, res.Warnings[1], `adjusted to @thor.golden`)
	assert.Contains(t, res.Warnings[2], `"Rio de Janeiro" -> "RJ"`)
}

func TestParse_EmptyMessageWarnsRequiredFields(t *testing.T) {
	res := Parse("nada por aqui")

	assert.Equal(t, "blue", res.Draft.DocumentColor)
	assert.Len(t, res.Warnings, 11)
	assert.Contains(t, res.Warnings, "required field is empty: name")
	assert.Contains(t, res.Warnings, "required field is empty: owner1")
	assert.NotContains(t, res.Warnings, "required field is empty: document_color")
}

func TestParse_InvalidColorAndLongRegion(t *testing.T) {
	res := Parse("Cor: verde\nUF: Goiás")

	assert.Equal(t, "verde", res.Draft.DocumentColor)
	assert.Equal(t, "Goiás", res.Draft.RegionCode)
	joined := strings.Join(res.Warnings, "\n")
	assert.Contains(t, joined, `invalid document color "verde"`)
	assert.Contains(t, joined, "two-letter code")
}

func TestParse_GenericPhoneFallsBackToPhone1(t *testing.T) {
	res := Parse("WhatsApp: 11 98888-7777\nTelefone 2: 11 3333-4444")
	assert.Equal(t, "11 98888-7777", res.Draft.Phone1)
	assert.Equal(t, "11 3333-4444", res.Draft.Phone2)
}

func TestNormalizeLabel(t *testing.T) {
	cases := map[string]string{
		"Castrado(a)":          "castrado",
		"  *Espécie*  ":        "especie",
		"Outras   Informações": "outras informacoes",
		"E-mail":               "email",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeLabel(in), in)
	}
}

func TestNormalizeRegion(t *testing.T) {
	assert.Equal(t, "SP", NormalizeRegion("sp"))
	assert.Equal(t, "SP", NormalizeRegion("São Paulo"))
	assert.Equal(t, "PR", NormalizeRegion("PARANÁ"))
	assert.Equal(t, "", NormalizeRegion("  "))
}

func TestParseHandler(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		body := `{"text":"Nome do pet: Mel\nCor: azul"}`
		req := httptest.NewRequest(http.MethodPost, "/api/intake/parse", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		ParseHandler()(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var res Result
		require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
		assert.Equal(t, "Mel", res.Draft.Name)
		assert.Equal(t, "blue", res.Draft.DocumentColor)
	})

	t.Run("plain text body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/intake/parse", strings.NewReader("Raça: SRD"))
		req.Header.Set("Content-Type", "text/plain; charset=utf-8")
		w := httptest.NewRecorder()

		ParseHandler()(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"breed":"SRD"`)
	})

	t.Run("empty text", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/intake/parse", strings.NewReader(`{"text":"  "}`))
		w := httptest.NewRecorder()

		ParseHandler()(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
