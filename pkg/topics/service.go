package topics

import (
	"context"

	"github.com/diretoriaja/portal/pkg/logger"
	"github.com/diretoriaja/portal/pkg/store"
)

// Periodo labels the window covered by the rollups.
const Periodo = "últimos registros"

// rawMentionsLimit bounds the mentions read when no rollup exists.
const rawMentionsLimit = 500

type Assuntos struct {
	PoliticoID int64   `json:"politico_id"`
	Nome       string  `json:"nome"`
	Periodo    string  `json:"periodo"`
	Assuntos   []Stats `json:"assuntos"`
}

type Service struct {
	reader *store.Reader
}

func NewService(reader *store.Reader) *Service {
	return &Service{reader: reader}
}

// Assuntos returns the top subjects discussed about a figure. The figure must
// exist. Rollups are read first; when there are none the raw mentions are
// aggregated instead. Example lookups that fail leave Exemplo nil.
func (s *Service) Assuntos(ctx context.Context, politicoID int64, limite int) (Assuntos, error) {
	p, err := s.reader.Politico(ctx, politicoID)
	if err != nil {
		return Assuntos{}, err
	}

	out := Assuntos{
		PoliticoID: p.ID,
		Nome:       p.Name,
		Periodo:    Periodo,
		Assuntos:   []Stats{},
	}
	if limite <= 0 {
		return out, nil
	}

	topics, err := s.reader.MentionTopics(ctx, p.ID, limite)
	if err != nil {
		return Assuntos{}, err
	}
	if len(topics) > 0 {
		stats := FromTopics(topics)
		for i := range stats {
			stats[i].Exemplo = s.example(ctx, p.ID, stats[i].Assunto)
		}
		out.Assuntos = stats
		return out, nil
	}

	mentions, err := s.reader.SocialMentions(ctx, p.ID, "", rawMentionsLimit)
	if err != nil {
		return Assuntos{}, err
	}
	stats := FromMentions(mentions)
	if len(stats) > limite {
		stats = stats[:limite]
	}
	out.Assuntos = stats
	return out, nil
}

func (s *Service) example(ctx context.Context, politicoID int64, assunto string) *string {
	mentions, err := s.reader.MentionsByAssunto(ctx, politicoID, assunto, 1)
	if err != nil {
		logger.Warn("[Topics] Example lookup failed", "assunto", assunto, "err", err)
		return nil
	}
	if len(mentions) == 0 {
		return nil
	}
	return Excerpt(mentions[0])
}

// Topics returns every rollup of a figure with its predominant sentiment.
// The figure must exist.
func (s *Service) Topics(ctx context.Context, politicoID int64) ([]Stats, error) {
	if _, err := s.reader.Politico(ctx, politicoID); err != nil {
		return nil, err
	}
	rows, err := s.reader.MentionTopics(ctx, politicoID, 0)
	if err != nil {
		return nil, err
	}
	return FromTopics(rows), nil
}
