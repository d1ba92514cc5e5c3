package ingesting

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText coloca em minúsculas, remove acentos (NFD + remoção das marcas) e espaços nas pontas
func NormalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(strings.ToLower(out))
}

// monthName é uma entrada da tabela de meses em francês: o nome completo e as variações aceitas
type monthName struct {
	month    int
	full     string
	variants []string
}

// frenchMonths contém nomes completos, abreviações de 3-4 letras e erros de digitação comuns
var frenchMonths = []monthName{
	{1, "janvier", []string{"janv", "jan", "janvie", "janver", "jenvier"}},
	{2, "fevrier", []string{"fevr", "fev", "fevrie", "fevier", "fervier", "feb"}},
	{3, "mars", []string{"mar", "mrs"}},
	{4, "avril", []string{"avr", "avri", "avirl"}},
	{5, "mai", []string{"may"}},
	{6, "juin", []string{"jun", "juim"}},
	{7, "juillet", []string{"juil", "jul", "juilet", "juillt", "juiller"}},
	{8, "aout", []string{"aou", "aoyt", "aoute"}},
	{9, "septembre", []string{"sept", "sep", "septembr", "setembre", "septenbre"}},
	{10, "octobre", []string{"oct", "octo", "octbre", "octobr"}},
	{11, "novembre", []string{"nov", "novem", "novembr", "novemvre"}},
	{12, "decembre", []string{"dec", "decemb", "decembr", "decenbre"}},
}

// Menor token (e menor nome completo) considerado na comparação aproximada
const fuzzyMinLength = 5

type monthPattern struct {
	month int
	re    *regexp.Regexp
}

var (
	monthPatterns = buildMonthPatterns()
	letterRuns    = regexp.MustCompile(`[a-z]+`)
)

// buildMonthPatterns monta uma expressão por mês; a fronteira é qualquer caractere que não seja
// letra, para que "avr" não case dentro de outra palavra
func buildMonthPatterns() []monthPattern {
	patterns := make([]monthPattern, 0, len(frenchMonths))
	for _, m := range frenchMonths {
		names := append([]string{m.full}, m.variants...)
		patterns = append(patterns, monthPattern{month: m.month, re: wordPattern(names...)})
	}
	return patterns
}

// wordPattern casa qualquer uma das palavras inteiras em texto normalizado
func wordPattern(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?:^|[^a-z])(?:` + strings.Join(quoted, "|") + `)(?:[^a-z]|$)`)
}

// DetectMonth procura um mês no texto já normalizado. Quando mais de um mês aparece, vence o
// que aparece primeiro no texto.
func DetectMonth(normalized string, fuzzy bool) (int, bool) {
	best, bestPos := 0, -1
	for _, p := range monthPatterns {
		loc := p.re.FindStringIndex(normalized)
		if loc == nil {
			continue
		}
		if bestPos == -1 || loc[0] < bestPos {
			best, bestPos = p.month, loc[0]
		}
	}
	if bestPos >= 0 {
		return best, true
	}

	if fuzzy {
		return detectMonthFuzzy(normalized)
	}
	return 0, false
}

// detectMonthFuzzy aceita um token a uma edição de distância de um nome completo ("avirl", "octobe")
func detectMonthFuzzy(normalized string) (int, bool) {
	for _, token := range letterRuns.FindAllString(normalized, -1) {
		if len(token) < fuzzyMinLength {
			continue
		}
		for _, m := range frenchMonths {
			if len(m.full) < fuzzyMinLength {
				continue
			}
			if levenshtein.ComputeDistance(token, m.full) <= 1 {
				return m.month, true
			}
		}
	}
	return 0, false
}

// containsAll indica se o texto contém todas as palavras-chave
func containsAll(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// containsAny indica se o texto contém alguma das palavras-chave
func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
