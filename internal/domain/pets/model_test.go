package pets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPetHelpers(t *testing.T) {
	p := Pet{Profile: Profile{Name: "  Milo da Silva", Owner1: "Ana", Owner2: " ", Phone1: "1", Phone2: "2"}}

	require.Equal(t, "Milo", p.FirstName())
	require.Equal(t, "Ana", p.Owners())
	require.Equal(t, "1 / 2", p.Phones())
	require.Equal(t, "", Pet{}.FirstName())
}

func TestParseEnums(t *testing.T) {
	c, ok := ParseDocumentColor("Azul")
	require.True(t, ok)
	require.Equal(t, ColorBlue, c)

	c, ok = ParseDocumentColor("PINK")
	require.True(t, ok)
	require.Equal(t, ColorPink, c)

	_, ok = ParseDocumentColor("verde")
	require.False(t, ok)

	s, ok := ParseStatus("Pronto")
	require.True(t, ok)
	require.Equal(t, StatusReady, s)

	s, ok = ParseStatus("")
	require.True(t, ok)
	require.Equal(t, StatusPending, s)
}
