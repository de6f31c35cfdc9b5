package relevance

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/diretoriaja/portal/pkg/ai"
	"github.com/diretoriaja/portal/pkg/common"
	"github.com/diretoriaja/portal/pkg/logger"
	"github.com/diretoriaja/portal/pkg/store"
)

// AlertaSemIA is returned when no technical summary could be produced.
const AlertaSemIA = "OpenAI não configurado ou falhou; exibindo apenas breakdown de pontos."

// MaxContentTokens bounds the article text sent to the model.
const MaxContentTokens = 900

// Analise is the response of the news analysis: the deterministic breakdown
// plus an optional model-written summary.
type Analise struct {
	NoticiaID     string    `json:"noticia_id"`
	Pontos        Breakdown `json:"pontos"`
	ResumoTecnico *string   `json:"resumo_tecnico"`
	PorquePontuou []string  `json:"porque_pontuou"`
	Hipoteses     []string  `json:"hipoteses"`
	Alertas       []string  `json:"alertas"`
}

type resumoTecnico struct {
	ResumoTecnico string   `json:"resumo_tecnico" jsonschema:"description=4-6 bullets separados por quebra de linha"`
	PorquePontuou []string `json:"porque_pontuou"`
	Hipoteses     []string `json:"hipoteses"`
	Alertas       []string `json:"alertas"`
}

type Service struct {
	reader    *store.Reader
	client    ai.Client
	aiTimeout time.Duration
	now       func() time.Time
}

type ServiceOption func(*Service)

// WithAIClient enables the technical summary.
func WithAIClient(c ai.Client) ServiceOption {
	return func(s *Service) {
		s.client = c
	}
}

func WithAITimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.aiTimeout = d
	}
}

func NewService(reader *store.Reader, opts ...ServiceOption) *Service {
	s := &Service{
		reader:    reader,
		aiTimeout: 12 * time.Second,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Analyze loads one news item and explains its score. store.ErrNotFound and
// every other gateway error on the item lookup are returned unchanged. The
// figure name and the model summary are optional and never fail the call.
func (s *Service) Analyze(ctx context.Context, noticiaID string) (Analise, error) {
	n, err := s.reader.Noticia(ctx, noticiaID)
	if err != nil {
		return Analise{}, err
	}

	out := Analise{
		NoticiaID:     noticiaID,
		Pontos:        Explain(n),
		PorquePontuou: []string{},
		Hipoteses:     []string{},
		Alertas:       []string{},
	}

	var nome string
	if n.PoliticoID != nil {
		p, err := s.reader.Politico(ctx, *n.PoliticoID)
		if err != nil {
			logger.Warn("[Relevance] Could not resolve politico name", "noticia", noticiaID, "err", err)
		} else {
			nome = p.Name
		}
	}

	resumo, err := s.summarize(ctx, n, nome, out.Pontos)
	if err != nil {
		logger.Warn("[Relevance] Technical summary failed", "noticia", noticiaID, "err", err)
	}
	if resumo == nil {
		out.Alertas = []string{AlertaSemIA}
		return out, nil
	}

	text := strings.TrimSpace(resumo.ResumoTecnico)
	out.ResumoTecnico = &text
	out.PorquePontuou = nonNil(resumo.PorquePontuou)
	out.Hipoteses = nonNil(resumo.Hipoteses)
	out.Alertas = nonNil(resumo.Alertas)
	return out, nil
}

func (s *Service) summarize(ctx context.Context, n common.Noticia, nome string, pontos Breakdown) (*resumoTecnico, error) {
	if s.client == nil {
		return nil, nil
	}

	payload := map[string]any{
		"agora_utc":     s.now().UTC().Format(time.RFC3339),
		"politico_nome": nome,
		"noticia": map[string]any{
			"titulo":                     strings.TrimSpace(n.Titulo),
			"descricao":                  strings.TrimSpace(n.Descricao),
			"fonte_nome":                 n.FonteNome,
			"publicado_em":               n.PublicadoEm,
			"tipo":                       n.Tipo,
			"url":                        n.URL,
			"conteudo_completo_truncado": ai.TruncateTokens(strings.TrimSpace(n.Conteudo), MaxContentTokens),
		},
		"pontos": pontos,
	}
	prompt, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	var out resumoTecnico
	err = s.client.GenerateCompletionWithFormat(
		ctx,
		"resumo_tecnico",
		"Resumo técnico e explicação da pontuação de uma notícia",
		string(prompt),
		&out,
		ai.WithSystemPrompts(ai.NewsAnalysisPrompt),
		ai.WithTemperature(0.2),
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
