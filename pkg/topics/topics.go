// Package topics aggregates social mentions into per-subject sentiment
// statistics.
package topics

import (
	"sort"
	"strings"

	"github.com/diretoriaja/portal/pkg/common"
)

const (
	Positivo = "positivo"
	Negativo = "negativo"
	Neutro   = "neutro"
)

// SemAssunto collects mentions that carry no subject.
const SemAssunto = "Outro"

// ExcerptRunes bounds the example taken from a mention body.
const ExcerptRunes = 120

// Stats is the sentiment breakdown of one subject.
type Stats struct {
	Assunto                string  `json:"assunto"`
	TotalMencoes           int64   `json:"total_mencoes"`
	MencoesPositivas       int64   `json:"mencoes_positivas"`
	MencoesNegativas       int64   `json:"mencoes_negativas"`
	MencoesNeutras         int64   `json:"mencoes_neutras"`
	SentimentoPredominante string  `json:"sentimento_predominante"`
	EngagementTotal        float64 `json:"engagement_total"`
	Exemplo                *string `json:"exemplo"`
}

// Predominant picks the label with the most mentions. Ties favour positivo,
// then negativo.
func Predominant(pos, neg, neu int64) string {
	switch {
	case pos >= neg && pos >= neu:
		return Positivo
	case neg >= pos && neg >= neu:
		return Negativo
	default:
		return Neutro
	}
}

// FromTopics converts upstream rollups. Input order is kept.
func FromTopics(topics []common.MentionTopic) []Stats {
	out := make([]Stats, 0, len(topics))
	for _, t := range topics {
		out = append(out, Stats{
			Assunto:                t.Assunto,
			TotalMencoes:           t.TotalMencoes,
			MencoesPositivas:       t.MencoesPositivas,
			MencoesNegativas:       t.MencoesNegativas,
			MencoesNeutras:         t.MencoesNeutras,
			SentimentoPredominante: Predominant(t.MencoesPositivas, t.MencoesNegativas, t.MencoesNeutras),
			EngagementTotal:        t.EngagementTotal,
		})
	}
	return out
}

// FromMentions groups raw mentions by subject. Mentions without a subject
// are grouped under SemAssunto and unrecognised sentiments count as neutral. The result is
// ordered by volume, ties by first appearance, and every entry carries the
// example of its first mention.
func FromMentions(mentions []common.SocialMention) []Stats {
	byAssunto := make(map[string]int)
	var out []Stats
	for _, m := range mentions {
		assunto := strings.TrimSpace(m.Assunto)
		if assunto == "" {
			assunto = SemAssunto
		}
		i, ok := byAssunto[assunto]
		if !ok {
			i = len(out)
			byAssunto[assunto] = i
			out = append(out, Stats{Assunto: assunto, Exemplo: Excerpt(m)})
		}
		s := &out[i]
		s.TotalMencoes++
		s.EngagementTotal += m.EngagementScore
		switch strings.ToLower(strings.TrimSpace(m.Sentimento)) {
		case Positivo:
			s.MencoesPositivas++
		case Negativo:
			s.MencoesNegativas++
		default:
			s.MencoesNeutras++
		}
	}

	for i := range out {
		out[i].SentimentoPredominante = Predominant(out[i].MencoesPositivas, out[i].MencoesNegativas, out[i].MencoesNeutras)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalMencoes > out[j].TotalMencoes
	})
	if out == nil {
		return []Stats{}
	}
	return out
}

// Excerpt returns the subject detail of m, else the first ExcerptRunes runes
// of its body, else nil.
func Excerpt(m common.SocialMention) *string {
	if d := strings.TrimSpace(m.AssuntoDetalhe); d != "" {
		return &d
	}
	if m.Conteudo == "" {
		return nil
	}
	r := []rune(m.Conteudo)
	if len(r) > ExcerptRunes {
		r = r[:ExcerptRunes]
	}
	s := string(r)
	return &s
}
