package documents

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFitChars(t *testing.T) {
	assert.Equal(t, "THOR", FitChars(" thor ", 10))
	assert.Equal(t, "GOLDEN RET…", FitChars("Golden Retriever", 11))
	assert.Equal(t, "NITERÓI", FitChars("Niterói", 7))
	assert.Equal(t, "", FitChars("   ", 5))
	assert.Equal(t, "SEM LIMITE NENHUM", FitChars("sem limite nenhum", 0))
}

func TestFitChars_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.StringMatching(`[a-zA-Z0-9]{1,60}`).Draw(t, "value")
		budget := rapid.IntRange(1, 40).Draw(t, "budget")

		got := FitChars(v, budget)
		upper := strings.ToUpper(v)

		if utf8.RuneCountInString(v) <= budget {
			if got != upper {
				t.Fatalf("expected %q, got %q", upper, got)
			}
			return
		}
		if utf8.RuneCountInString(got) != budget {
			t.Fatalf("expected %d runes, got %q", budget, got)
		}
		want := string([]rune(upper)[:budget-1]) + ellipsis
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	})
}

func TestFitWidth(t *testing.T) {
	measure := func(s string) float64 { return float64(utf8.RuneCountInString(s)) * 10 }

	assert.Equal(t, "ANA / BRUNO", FitWidth("ANA / BRUNO", 200, measure))
	assert.Equal(t, "ANA…", FitWidth("ANA / BRUNO", 50, measure))
	assert.Equal(t, ellipsis, FitWidth("ANA", 5, measure))
}
