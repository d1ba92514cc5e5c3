package ingesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "code salarie", NormalizeText("  Code Salarié "))
	assert.Equal(t, "fevrier", NormalizeText("Février"))
	assert.Equal(t, "aout", NormalizeText("AOÛT"))
	assert.Equal(t, "", NormalizeText("   "))
}

func TestDetectMonth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		fuzzy  bool
		month  int
		found  bool
	}{
		{name: "nome completo", header: "janvier pos", month: 1, found: true},
		{name: "abreviação", header: "fev manq", month: 2, found: true},
		{name: "nome normalizado sem acento", header: "aout montant", month: 8, found: true},
		{name: "erro de digitação conhecido", header: "avirl compteur", month: 4, found: true},
		{name: "mês com número", header: "sept.", month: 9, found: true},
		{name: "primeiro mês do texto vence", header: "mai / juin", month: 5, found: true},
		{name: "abreviação não casa dentro de palavra", header: "marche", fuzzy: false, found: false},
		{name: "aproximação desligada", header: "octobe pos", fuzzy: false, found: false},
		{name: "aproximação ligada", header: "octobe pos", fuzzy: true, month: 10, found: true},
		{name: "aproximação ignora tokens curtos", header: "code salarie", fuzzy: true, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, found := DetectMonth(tt.header, tt.fuzzy)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.month, month)
			}
		})
	}
}
