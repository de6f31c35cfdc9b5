// Package relevance explains the composite relevance score of a news item as
// the weighted contribution of its four sub-scores.
package relevance

import (
	"fmt"
	"math"

	"github.com/diretoriaja/portal/pkg/common"
)

// Weights of the composite score. They sum to 1.
const (
	PesoRecencia    = 0.25
	PesoMencao      = 0.35
	PesoFonte       = 0.25
	PesoEngajamento = 0.15
)

// Tolerance is the largest difference between the stored and the recomputed
// composite that is not reported.
const Tolerance = 1e-6

type Weights struct {
	Recencia    float64 `json:"recencia"`
	Mencao      float64 `json:"mencao"`
	Fonte       float64 `json:"fonte"`
	Engajamento float64 `json:"engajamento"`
}

var DefaultWeights = Weights{
	Recencia:    PesoRecencia,
	Mencao:      PesoMencao,
	Fonte:       PesoFonte,
	Engajamento: PesoEngajamento,
}

type Scores struct {
	Recencia        float64 `json:"recencia"`
	Mencao          float64 `json:"mencao"`
	Fonte           float64 `json:"fonte"`
	Engajamento     float64 `json:"engajamento"`
	RelevanciaTotal float64 `json:"relevancia_total"`
}

type Contribuicoes struct {
	Recencia    float64 `json:"recencia"`
	Mencao      float64 `json:"mencao"`
	Fonte       float64 `json:"fonte"`
	Engajamento float64 `json:"engajamento"`
}

type Detalhes struct {
	MencaoTitulo   bool   `json:"mencao_titulo"`
	MencaoConteudo int    `json:"mencao_conteudo"`
	FonteNome      string `json:"fonte_nome,omitempty"`
	Tipo           string `json:"tipo,omitempty"`
}

// Breakdown is the explanation of one item's score.
type Breakdown struct {
	Pesos               Weights       `json:"pesos"`
	Scores              Scores        `json:"scores"`
	Contribuicoes       Contribuicoes `json:"contribuicoes"`
	RelevanciaCalculada float64       `json:"relevancia_calculada"`
	Justificativas      []string      `json:"justificativas"`
	Notas               []string      `json:"notas,omitempty"`
	Detalhes            Detalhes      `json:"detalhes"`
}

// Explain decomposes n's score with DefaultWeights.
func Explain(n common.Noticia) Breakdown {
	return ExplainWith(DefaultWeights, n)
}

// ExplainWith decomposes n's score. Contributions are sub-score times weight
// and the recomputed composite is their sum. A stored composite that differs
// from the recomputed one by more than Tolerance yields a note, not an error.
func ExplainWith(w Weights, n common.Noticia) Breakdown {
	c := Contribuicoes{
		Recencia:    n.ScoreRecencia * w.Recencia,
		Mencao:      n.ScoreMencao * w.Mencao,
		Fonte:       n.ScoreFonte * w.Fonte,
		Engajamento: n.ScoreEngajamento * w.Engajamento,
	}
	total := c.Recencia + c.Mencao + c.Fonte + c.Engajamento

	b := Breakdown{
		Pesos: w,
		Scores: Scores{
			Recencia:        n.ScoreRecencia,
			Mencao:          n.ScoreMencao,
			Fonte:           n.ScoreFonte,
			Engajamento:     n.ScoreEngajamento,
			RelevanciaTotal: n.RelevanciaTotal,
		},
		Contribuicoes:       c,
		RelevanciaCalculada: total,
		Justificativas:      Justify(n),
		Detalhes: Detalhes{
			MencaoTitulo:   n.MencaoTitulo,
			MencaoConteudo: n.MencaoConteudo,
			FonteNome:      n.FonteNome,
			Tipo:           n.Tipo,
		},
	}

	if math.Abs(total-n.RelevanciaTotal) > Tolerance {
		b.Notas = append(b.Notas, fmt.Sprintf(
			"relevância recalculada (%.4f) difere da armazenada (%.4f)",
			total, n.RelevanciaTotal,
		))
	}
	return b
}

// Justify lists the reasons an item scored, in a fixed order: title mention,
// content mentions, trusted source (> 70) and recency (> 80).
func Justify(n common.Noticia) []string {
	out := []string{}
	if n.MencaoTitulo {
		out = append(out, "nome mencionado diretamente no título")
	}
	if n.MencaoConteudo > 0 {
		out = append(out, fmt.Sprintf("nome mencionado %d vezes no conteúdo", n.MencaoConteudo))
	}
	if n.ScoreFonte > 70 {
		out = append(out, "fonte de alta confiabilidade")
	}
	if n.ScoreRecencia > 80 {
		out = append(out, "notícia muito recente")
	}
	return out
}
