package store

import (
	"context"
	"strings"

	"github.com/diretoriaja/portal/pkg/common"
)

type ProcessoFilter struct {
	Tribunal string
	Tipo     string
	Status   string
}

func (r *Reader) Processos(ctx context.Context, storageKey string, f ProcessoFilter, limit int) ([]common.ProcessoJudicial, error) {
	if storageKey == "" {
		return nil, nil
	}
	filters := []Filter{Eq("politico_id", storageKey)}
	if f.Tribunal != "" {
		filters = append(filters, Eq("tribunal", strings.ToUpper(f.Tribunal)))
	}
	if f.Tipo != "" {
		filters = append(filters, Eq("tipo", f.Tipo))
	}
	if f.Status != "" {
		filters = append(filters, Eq("status", f.Status))
	}
	return find(ctx, r.gw, CollectionProcessos, Query{
		Filters: filters,
		OrderBy: []Order{Desc("coletado_em")},
		Limit:   limit,
	}, DecodeProcesso)
}

type DoacaoRole string

const (
	// RoleDoador selects donations paid by the figure.
	RoleDoador DoacaoRole = "cpf_doador"
	// RoleCandidato selects donations received by the figure.
	RoleCandidato DoacaoRole = "cpf_candidato"
)

func (r *Reader) Doacoes(ctx context.Context, cpf string, role DoacaoRole, eleicao string, limit int) ([]common.DoacaoEleitoral, error) {
	if cpf == "" {
		return nil, nil
	}
	filters := []Filter{Eq(string(role), cpf)}
	if eleicao != "" {
		filters = append(filters, Eq("eleicao", eleicao))
	}
	return find(ctx, r.gw, CollectionDoacoes, Query{
		Filters: filters,
		Limit:   limit,
	}, DecodeDoacao)
}

func (r *Reader) Filiacoes(ctx context.Context, storageKey string) ([]common.FiliacaoPartidaria, error) {
	if storageKey == "" {
		return nil, nil
	}
	return find(ctx, r.gw, CollectionFiliacoes, Query{
		Filters: []Filter{Eq("politico_id", storageKey)},
		OrderBy: []Order{Desc("data_filiacao")},
	}, DecodeFiliacao)
}

func (r *Reader) Candidaturas(ctx context.Context, storageKey, eleicao string) ([]common.Candidatura, error) {
	if storageKey == "" {
		return nil, nil
	}
	filters := []Filter{Eq("politico_id", storageKey)}
	if eleicao != "" {
		filters = append(filters, Eq("eleicao", eleicao))
	}
	return find(ctx, r.gw, CollectionCandidaturas, Query{
		Filters: filters,
		OrderBy: []Order{Desc("eleicao")},
	}, DecodeCandidatura)
}
