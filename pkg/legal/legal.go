// Package legal builds the court-record and electoral overview of a figure
// and the detail listings behind it.
package legal

import (
	"fmt"
	"strings"

	"github.com/diretoriaja/portal/pkg/common"
	"github.com/diretoriaja/portal/pkg/store"
	"github.com/shopspring/decimal"
)

// StatusAtivo marks a case that is still open.
const StatusAtivo = "ativo"

// CPFDigits is the length of a normalized national identifier.
const CPFDigits = 11

// MsgInvalidCPF is the client-facing message of a rejected identifier.
const MsgInvalidCPF = "CPF inválido - deve conter 11 dígitos"

// Outros is the group-by bucket for rows missing the grouped field.
const Outros = "outros"

var negatedElected = []string{"não eleito", "nao eleito", "nao_eleito", "não_eleito"}

// MaskNationalID keeps the first three and last two characters of id. Inputs
// shorter than five characters are rejected and never echoed back.
func MaskNationalID(id string) (string, error) {
	r := []rune(strings.TrimSpace(id))
	if len(r) < 5 {
		return "", fmt.Errorf("national id too short to mask: %w", store.ErrValidation)
	}
	return string(r[:3]) + "***" + string(r[len(r)-2:]), nil
}

// NormalizeCPF strips everything but digits and requires exactly CPFDigits
// of them.
func NormalizeCPF(raw string) (string, error) {
	var b strings.Builder
	for _, c := range raw {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	if b.Len() != CPFDigits {
		return "", fmt.Errorf("%s: %w", MsgInvalidCPF, store.ErrValidation)
	}
	return b.String(), nil
}

// Elected reports whether a tally outcome means the candidate won. Matching
// is case-insensitive and negated outcomes like "não eleito" do not count.
func Elected(situacao string) bool {
	s := strings.ToLower(strings.TrimSpace(situacao))
	if !strings.Contains(s, "eleito") {
		return false
	}
	for _, neg := range negatedElected {
		if strings.Contains(s, neg) {
			return false
		}
	}
	return true
}

func CountElected(candidaturas []common.Candidatura) int {
	n := 0
	for _, c := range candidaturas {
		if Elected(c.SituacaoTotalizacao) {
			n++
		}
	}
	return n
}

func CountActive(processos []common.ProcessoJudicial) int {
	n := 0
	for _, p := range processos {
		if p.Status == StatusAtivo {
			n++
		}
	}
	return n
}

// SumDonations adds the donation values in decimal and rounds half away
// from zero at the cent.
func SumDonations(doacoes []common.DoacaoEleitoral) float64 {
	total := decimal.Zero
	for _, d := range doacoes {
		total = total.Add(decimal.NewFromFloat(d.Valor))
	}
	return total.Round(2).InexactFloat64()
}

// Parties returns the distinct party codes of the affiliations in input
// order, using the party name when the code is missing.
func Parties(filiacoes []common.FiliacaoPartidaria) []string {
	seen := make(map[string]struct{}, len(filiacoes))
	out := []string{}
	for _, f := range filiacoes {
		p := f.SiglaPartido
		if p == "" {
			p = f.Partido
		}
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// countBy groups items by key, using Outros for empty keys.
func countBy[T any](items []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		k := key(it)
		if k == "" {
			k = Outros
		}
		out[k]++
	}
	return out
}
