package legal

import (
	"context"
	"errors"
	"time"

	"github.com/diretoriaja/portal/internal/util"
	"github.com/diretoriaja/portal/pkg/common"
	"github.com/diretoriaja/portal/pkg/logger"
	"github.com/diretoriaja/portal/pkg/store"
	"golang.org/x/sync/errgroup"
)

// DefaultBranchTimeout bounds each optional read of the summary.
const DefaultBranchTimeout = 4 * time.Second

// Summary is the court-record and electoral overview of one figure. CPF is
// masked and omitted when the figure has no usable identifier.
type Summary struct {
	PoliticoID            int64      `json:"politico_id"`
	Nome                  string     `json:"nome"`
	CPF                   *string    `json:"cpf,omitempty"`
	TotalProcessos        int        `json:"total_processos"`
	ProcessosAtivos       int        `json:"processos_ativos"`
	TotalDoacoesFeitas    int        `json:"total_doacoes_feitas"`
	ValorTotalDoado       float64    `json:"valor_total_doado"`
	TotalDoacoesRecebidas int        `json:"total_doacoes_recebidas"`
	ValorTotalRecebido    float64    `json:"valor_total_recebido"`
	TotalCandidaturas     int        `json:"total_candidaturas"`
	EleicoesVencidas      int        `json:"eleicoes_vencidas"`
	HistoricoPartidos     []string   `json:"historico_partidos"`
	UltimaAtualizacao     *time.Time `json:"ultima_atualizacao"`
}

type Service struct {
	reader        *store.Reader
	branchTimeout time.Duration
}

func NewService(reader *store.Reader, branchTimeout time.Duration) *Service {
	if branchTimeout <= 0 {
		branchTimeout = DefaultBranchTimeout
	}
	return &Service{reader: reader, branchTimeout: branchTimeout}
}

// Summary loads the profile and then reads cases, candidacies,
// affiliations, donations made and received and the last inquiry
// concurrently. Only the profile lookup can fail the call.
func (s *Service) Summary(ctx context.Context, politicoID int64) (Summary, error) {
	p, err := s.reader.Politico(ctx, politicoID)
	if err != nil {
		return Summary{}, err
	}

	var (
		processos    []common.ProcessoJudicial
		candidaturas []common.Candidatura
		filiacoes    []common.FiliacaoPartidaria
		feitas       []common.DoacaoEleitoral
		recebidas    []common.DoacaoEleitoral
		ultima       *time.Time
	)
	t := s.branchTimeout

	var eg errgroup.Group
	eg.Go(util.DegradeSlice(ctx, t, "processos", &processos, func(ctx context.Context) ([]common.ProcessoJudicial, error) {
		return s.reader.Processos(ctx, p.UUID, store.ProcessoFilter{}, 0)
	}))
	eg.Go(util.DegradeSlice(ctx, t, "candidaturas", &candidaturas, func(ctx context.Context) ([]common.Candidatura, error) {
		return s.reader.Candidaturas(ctx, p.UUID, "")
	}))
	eg.Go(util.DegradeSlice(ctx, t, "filiacoes", &filiacoes, func(ctx context.Context) ([]common.FiliacaoPartidaria, error) {
		return s.reader.Filiacoes(ctx, p.UUID)
	}))
	eg.Go(util.DegradeSlice(ctx, t, "doacoes_feitas", &feitas, func(ctx context.Context) ([]common.DoacaoEleitoral, error) {
		return s.reader.Doacoes(ctx, p.CPF, store.RoleDoador, "", 0)
	}))
	eg.Go(util.DegradeSlice(ctx, t, "doacoes_recebidas", &recebidas, func(ctx context.Context) ([]common.DoacaoEleitoral, error) {
		return s.reader.Doacoes(ctx, p.CPF, store.RoleCandidato, "", 0)
	}))
	eg.Go(util.Degrade(ctx, t, "ultima_consulta", &ultima, nil, func(ctx context.Context) (*time.Time, error) {
		return s.reader.UltimaConsulta(ctx, p.UUID)
	}))
	_ = eg.Wait()

	out := Summary{
		PoliticoID:            p.ID,
		Nome:                  p.Name,
		TotalProcessos:        len(processos),
		ProcessosAtivos:       CountActive(processos),
		TotalDoacoesFeitas:    len(feitas),
		ValorTotalDoado:       SumDonations(feitas),
		TotalDoacoesRecebidas: len(recebidas),
		ValorTotalRecebido:    SumDonations(recebidas),
		TotalCandidaturas:     len(candidaturas),
		EleicoesVencidas:      CountElected(candidaturas),
		HistoricoPartidos:     Parties(filiacoes),
		UltimaAtualizacao:     ultima,
	}
	if p.CPF != "" {
		masked, err := MaskNationalID(p.CPF)
		if err != nil {
			logger.Warn("[Legal] Stored national id cannot be masked", "politico", p.ID)
		} else {
			out.CPF = &masked
		}
	}
	return out, nil
}

type Processos struct {
	Processos   []common.ProcessoJudicial `json:"processos"`
	Total       int                       `json:"total"`
	PorTribunal map[string]int            `json:"por_tribunal"`
	PorTipo     map[string]int            `json:"por_tipo"`
}

// Processos lists the cases of a figure, newest first. The figure must exist;
// a figure without a storage key has no cases.
func (s *Service) Processos(ctx context.Context, politicoID int64, f store.ProcessoFilter, limit int) (Processos, error) {
	key, err := s.reader.StorageKey(ctx, politicoID)
	if err != nil {
		return Processos{}, err
	}
	items, err := s.reader.Processos(ctx, key, f, limit)
	if err != nil {
		return Processos{}, err
	}
	items = nonNil(items)
	return Processos{
		Processos:   items,
		Total:       len(items),
		PorTribunal: countBy(items, func(p common.ProcessoJudicial) string { return p.Tribunal }),
		PorTipo:     countBy(items, func(p common.ProcessoJudicial) string { return p.Tipo }),
	}, nil
}

// DoacaoTipo selects which side of a donation the figure is on.
type DoacaoTipo string

const (
	DoacoesFeitas    DoacaoTipo = "feitas"
	DoacoesRecebidas DoacaoTipo = "recebidas"
	DoacoesTodas     DoacaoTipo = "todas"
)

type Doacoes struct {
	Doacoes    []common.DoacaoEleitoral `json:"doacoes"`
	Total      int                      `json:"total"`
	ValorTotal float64                  `json:"valor_total"`
	PorEleicao map[string]int           `json:"por_eleicao"`
}

// Doacoes lists donations made and/or received by a figure. limit applies to
// each side separately. A figure without a national identifier has none.
func (s *Service) Doacoes(ctx context.Context, politicoID int64, tipo DoacaoTipo, eleicao string, limit int) (Doacoes, error) {
	p, err := s.reader.Politico(ctx, politicoID)
	if err != nil {
		return Doacoes{}, err
	}

	var roles []store.DoacaoRole
	switch tipo {
	case DoacoesFeitas:
		roles = []store.DoacaoRole{store.RoleDoador}
	case DoacoesRecebidas:
		roles = []store.DoacaoRole{store.RoleCandidato}
	case DoacoesTodas, "":
		roles = []store.DoacaoRole{store.RoleDoador, store.RoleCandidato}
	default:
		return Doacoes{}, errors.Join(store.ErrValidation, errors.New("tipo must be feitas, recebidas or todas"))
	}

	items := []common.DoacaoEleitoral{}
	for _, role := range roles {
		part, err := s.reader.Doacoes(ctx, p.CPF, role, eleicao, limit)
		if err != nil {
			return Doacoes{}, err
		}
		items = append(items, part...)
	}

	return Doacoes{
		Doacoes:    items,
		Total:      len(items),
		ValorTotal: SumDonations(items),
		PorEleicao: countBy(items, func(d common.DoacaoEleitoral) string { return d.Eleicao }),
	}, nil
}

type Filiacoes struct {
	Filiacoes         []common.FiliacaoPartidaria `json:"filiacoes"`
	Total             int                         `json:"total"`
	HistoricoPartidos []string                    `json:"historico_partidos"`
}

func (s *Service) Filiacoes(ctx context.Context, politicoID int64) (Filiacoes, error) {
	key, err := s.reader.StorageKey(ctx, politicoID)
	if err != nil {
		return Filiacoes{}, err
	}
	items, err := s.reader.Filiacoes(ctx, key)
	if err != nil {
		return Filiacoes{}, err
	}
	items = nonNil(items)
	return Filiacoes{
		Filiacoes:         items,
		Total:             len(items),
		HistoricoPartidos: Parties(items),
	}, nil
}

type Candidaturas struct {
	Candidaturas []common.Candidatura `json:"candidaturas"`
	Total        int                  `json:"total"`
	PorEleicao   map[string]int       `json:"por_eleicao"`
}

func (s *Service) Candidaturas(ctx context.Context, politicoID int64, eleicao string) (Candidaturas, error) {
	key, err := s.reader.StorageKey(ctx, politicoID)
	if err != nil {
		return Candidaturas{}, err
	}
	items, err := s.reader.Candidaturas(ctx, key, eleicao)
	if err != nil {
		return Candidaturas{}, err
	}
	items = nonNil(items)
	return Candidaturas{
		Candidaturas: items,
		Total:        len(items),
		PorEleicao:   countBy(items, func(c common.Candidatura) string { return c.Eleicao }),
	}, nil
}

// ConsultaLogs lists inquiry logs, optionally for one figure. A figure that
// is unknown or has no storage key has no logs.
func (s *Service) ConsultaLogs(ctx context.Context, politicoID *int64, fonte string, limit int) ([]common.ConsultaLog, error) {
	var key string
	if politicoID != nil {
		k, err := s.reader.StorageKey(ctx, *politicoID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if k == "" {
			return []common.ConsultaLog{}, nil
		}
		key = k
	}
	logs, err := s.reader.ConsultaLogs(ctx, key, fonte, limit)
	if err != nil {
		return nil, err
	}
	return nonNil(logs), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
