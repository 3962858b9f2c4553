package documents

// Coordenadas en píxeles de cada plantilla (versión actual de los PNG en
// documents.templates_dir). Si cambia una plantilla se ajustan acá.

// Archivos de plantilla dentro del FS de assets.
const (
	tplIDCardBlue           = "idcard-blue.png"
	tplIDCardPink           = "idcard-pink.png"
	tplCertificate          = "certificate.png"
	tplVaccinationFrontBlue = "vaccination-front-blue.png"
	tplVaccinationFrontPink = "vaccination-front-pink.png"
	tplVaccinationBackBlue  = "vaccination-back-blue.png"
	tplVaccinationBackPink  = "vaccination-back-pink.png"
	tplSocialBlue           = "social-bg-blue.png"
	tplSocialPink           = "social-bg-pink.png"
	tplSocialLogo           = "social-logo.png"
	tplCoverLogo            = "cover-logo.png"
)

// slot es un rectángulo destino para la foto.
type slot struct {
	X, Y, W, H int
	Radius     float64
}

// cell es un valor de texto: posición de la línea base y límite de caracteres
// (0 = sin límite).
type cell struct {
	X, Y   float64
	Budget int
}

// Carteira (RG). Frente: foto girada -90° y firma. Verso: 7 filas x 2 columnas.
var (
	idCardPhoto = slot{X: 352, Y: 302, W: 272, H: 311}

	idCardSignatureX    = 645.0
	idCardSignatureY    = 680.0
	idCardSignatureSize = 90.0

	idCardValueSize = 21.0

	idCardName       = cell{1200, 255, 26}
	idCardCode       = cell{1745, 255, 18}
	idCardBirthDate  = cell{1200, 330, 14}
	idCardIssueDate  = cell{1745, 330, 14}
	idCardOwners     = cell{1200, 405, 30}
	idCardSpecies    = cell{1745, 405, 16}
	idCardBirthplace = cell{1200, 495, 18}
	idCardBreed      = cell{1745, 495, 22}
	idCardSex        = cell{1200, 565, 10}
	idCardSize       = cell{1745, 565, 12}
	idCardNeutered   = cell{1200, 640, 6}
	idCardCoat       = cell{1745, 640, 18}
	idCardPedigree   = cell{1200, 705, 6}
	idCardSocial     = cell{1745, 705, 18}
)

// Certidão de nascimento. Sin límite de caracteres salvo observaciones,
// que se cortan por ancho.
var (
	certificatePhoto = slot{X: 74, Y: 467, W: 208, H: 268, Radius: 28}

	certificateValueSize = 17.0

	certificateCode      = cell{305, 505, 0}
	certificateBirthDate = cell{530, 505, 0}
	certificateSpecies   = cell{757, 505, 0}
	certificateBreed     = cell{305, 573, 0}
	certificateCoat      = cell{645, 573, 0}
	certificateSex       = cell{305, 642, 0}
	certificateSize      = cell{645, 642, 0}
	certificateRegion    = cell{305, 712, 0}
	certificateCity      = cell{645, 712, 0}
	certificateName      = cell{80, 785, 0}
	certificateOwners    = cell{80, 865, 0}
	certificateNotes     = cell{80, 950, 0}

	certificateOwnersMaxWidth = 900.0
	certificateNotesMaxWidth  = 900.0
)

// Carteira de vacinação, frente. El verso es la plantilla sin cambios.
var (
	vaccinationPhoto = slot{X: 1127, Y: 477, W: 274, H: 329, Radius: 28}

	vaccinationValueSize = 20.0

	vaccinationName      = cell{25, 207, 40}
	vaccinationSpecies   = cell{25, 277, 16}
	vaccinationBreed     = cell{234, 277, 24}
	vaccinationCoat      = cell{25, 347, 30}
	vaccinationSex       = cell{380, 347, 10}
	vaccinationMicrochip = cell{25, 417, 25}
	vaccinationRegion    = cell{25, 487, 6}
	vaccinationCity      = cell{270, 487, 20}
	vaccinationOwners    = cell{25, 557, 40}
	vaccinationPhones    = cell{25, 643, 40}

	// centro horizontal de la caja de firma (1000,838 500x120) y 72% de su alto
	vaccinationSignatureX      = 1250.0
	vaccinationSignatureY      = 838 + 120*0.72
	vaccinationSignatureSize   = 72.0
	vaccinationSignatureStroke = 5
)

// Post para redes: lienzo cuadrado fijo.
const (
	socialSize = 1536

	socialPhotoCX    = 1107.0
	socialPhotoCY    = 620.0
	socialPhotoOffX  = -350
	socialPhotoOffY  = -388
	socialPhotoW     = 600
	socialPhotoH     = 700
	socialPhotoDeg   = -9.0
	socialLogoX      = 20
	socialLogoY      = 150
	socialLogoW      = 800
	socialLogoH      = 700
	socialNameX      = 1100.0
	socialNameY      = 1050.0
	socialNameDeg    = -9.0
	socialNameSize   = 130.0
	socialNameStroke = 9
	socialThumbBaseY = 1220.0
)

// thumb es una miniatura girada, ubicada por su centro.
type thumb struct {
	CX, CY float64
	W, H   int
	Deg    float64
}

// Orden de dibujo: vacunación, carteira, certidão.
var (
	socialVaccinationThumb = thumb{475, socialThumbBaseY, 580, 430, 10}
	socialIDCardThumb      = thumb{200, socialThumbBaseY + 20, 450, 330, 60}
	socialCertificateThumb = thumb{400, socialThumbBaseY, 360, 500, 0}
)
