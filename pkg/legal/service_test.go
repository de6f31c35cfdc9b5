package legal

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/diretoriaja/portal/pkg/store"
	"github.com/diretoriaja/portal/pkg/store/memory"
)

const cpf = "12345678901"

func newGateway() *memory.Gateway {
	gw := memory.New()
	gw.Insert(store.CollectionPoliticos,
		store.Row{"id": int64(1), "uuid": "u1", "name": "Ana Souza", "cpf": cpf},
		store.Row{"id": int64(2), "uuid": "u2", "name": "Sem CPF"},
		store.Row{"id": int64(3), "name": "Sem chave", "cpf": "12"},
	)
	gw.Insert(store.CollectionProcessos,
		store.Row{"id": "p1", "politico_id": "u1", "tribunal": "TJSP", "tipo": "civel", "status": "ativo", "coletado_em": "2026-10-03T00:00:00Z"},
		store.Row{"id": "p2", "politico_id": "u1", "tribunal": "TSE", "tipo": "eleitoral", "status": "arquivado", "coletado_em": "2026-10-02T00:00:00Z"},
		store.Row{"id": "p3", "politico_id": "u1", "tribunal": "TJSP", "tipo": "criminal", "status": "ativo", "coletado_em": "2026-10-01T00:00:00Z"},
	)
	gw.Insert(store.CollectionDoacoes,
		store.Row{"id": "d1", "cpf_doador": cpf, "cpf_candidato": "99999999999", "valor": 10.005, "eleicao": "2022"},
		store.Row{"id": "d2", "cpf_doador": cpf, "cpf_candidato": "88888888888", "valor": 10.005, "eleicao": "2024"},
		store.Row{"id": "d3", "cpf_doador": "77777777777", "cpf_candidato": cpf, "valor": 1500.0, "eleicao": "2024"},
	)
	gw.Insert(store.CollectionCandidaturas,
		store.Row{"id": "c1", "politico_id": "u1", "eleicao": "2016", "situacao_totalizacao": "ELEITO"},
		store.Row{"id": "c2", "politico_id": "u1", "eleicao": "2020", "situacao_totalizacao": "não eleito"},
		store.Row{"id": "c3", "politico_id": "u1", "eleicao": "2024", "situacao_totalizacao": "Eleito por média"},
	)
	gw.Insert(store.CollectionFiliacoes,
		store.Row{"id": "f1", "politico_id": "u1", "sigla_partido": "PSD", "data_filiacao": "2010-01-01T00:00:00Z"},
		store.Row{"id": "f2", "politico_id": "u1", "sigla_partido": "PT", "data_filiacao": "2018-01-01T00:00:00Z"},
	)
	gw.Insert(store.CollectionConsultaLogs,
		store.Row{"id": "l1", "politico_id": "u1", "fonte": "TSE", "iniciado_em": "2026-09-01T10:00:00Z"},
		store.Row{"id": "l2", "politico_id": "u1", "fonte": "TJSP", "iniciado_em": "2026-10-01T10:00:00Z"},
		store.Row{"id": "l3", "politico_id": "u2", "fonte": "TSE", "iniciado_em": "2026-10-05T10:00:00Z"},
	)
	return gw
}

func TestSummary(t *testing.T) {
	t.Parallel()

	s := NewService(store.NewReader(newGateway()), 0)
	got, err := s.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if got.CPF == nil || *got.CPF != "123***01" {
		t.Fatalf("unexpected cpf: %v", got.CPF)
	}
	if got.TotalProcessos != 3 || got.ProcessosAtivos != 2 {
		t.Fatalf("unexpected cases: %d/%d", got.TotalProcessos, got.ProcessosAtivos)
	}
	if got.TotalDoacoesFeitas != 2 || got.ValorTotalDoado != 20.01 {
		t.Fatalf("unexpected donations made: %d %v", got.TotalDoacoesFeitas, got.ValorTotalDoado)
	}
	if got.TotalDoacoesRecebidas != 1 || got.ValorTotalRecebido != 1500 {
		t.Fatalf("unexpected donations received: %d %v", got.TotalDoacoesRecebidas, got.ValorTotalRecebido)
	}
	if got.TotalCandidaturas != 3 || got.EleicoesVencidas != 2 {
		t.Fatalf("unexpected candidacies: %d/%d", got.TotalCandidaturas, got.EleicoesVencidas)
	}
	if !reflect.DeepEqual(got.HistoricoPartidos, []string{"PT", "PSD"}) {
		t.Fatalf("unexpected parties: %v", got.HistoricoPartidos)
	}
	want := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	if got.UltimaAtualizacao == nil || !got.UltimaAtualizacao.Equal(want) {
		t.Fatalf("unexpected last inquiry: %v", got.UltimaAtualizacao)
	}
}

func TestSummaryMissingKeys(t *testing.T) {
	t.Parallel()

	s := NewService(store.NewReader(newGateway()), 0)

	noCPF, err := s.Summary(context.Background(), 2)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if noCPF.CPF != nil || noCPF.TotalDoacoesFeitas != 0 || noCPF.TotalDoacoesRecebidas != 0 {
		t.Fatalf("expected no donation data: %+v", noCPF)
	}
	if noCPF.UltimaAtualizacao == nil {
		t.Fatalf("storage-key branches should still run: %+v", noCPF)
	}

	noKey, err := s.Summary(context.Background(), 3)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if noKey.CPF != nil {
		t.Fatalf("short national id must be omitted, got %q", *noKey.CPF)
	}
	if noKey.TotalProcessos != 0 || noKey.HistoricoPartidos == nil || noKey.UltimaAtualizacao != nil {
		t.Fatalf("unexpected summary: %+v", noKey)
	}
}

func TestSummaryDegradesBranches(t *testing.T) {
	t.Parallel()

	gw := newGateway()
	gw.Fail(store.CollectionProcessos, errors.New("down"))
	gw.Delay(store.CollectionDoacoes, time.Second)
	s := NewService(store.NewReader(gw), 20*time.Millisecond)

	got, err := s.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if got.TotalProcessos != 0 || got.TotalDoacoesFeitas != 0 || got.ValorTotalDoado != 0 {
		t.Fatalf("failed branches should be empty: %+v", got)
	}
	if got.TotalCandidaturas != 3 || got.EleicoesVencidas != 2 {
		t.Fatalf("healthy branches should be intact: %+v", got)
	}
}

func TestSummaryProfileErrors(t *testing.T) {
	t.Parallel()

	s := NewService(store.NewReader(newGateway()), 0)
	if _, err := s.Summary(context.Background(), 42); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProcessos(t *testing.T) {
	t.Parallel()

	s := NewService(store.NewReader(newGateway()), 0)
	ctx := context.Background()

	got, err := s.Processos(ctx, 1, store.ProcessoFilter{}, 50)
	if err != nil {
		t.Fatalf("Processos() error = %v", err)
	}
	if got.Total != 3 || got.Processos[0].ID != "p1" {
		t.Fatalf("unexpected listing: %+v", got)
	}
	if !reflect.DeepEqual(got.PorTribunal, map[string]int{"TJSP": 2, "TSE": 1}) {
		t.Fatalf("unexpected por_tribunal: %v", got.PorTribunal)
	}
	if !reflect.DeepEqual(got.PorTipo, map[string]int{"civel": 1, "eleitoral": 1, "criminal": 1}) {
		t.Fatalf("unexpected por_tipo: %v", got.PorTipo)
	}

	filtered, err := s.Processos(ctx, 1, store.ProcessoFilter{Tribunal: "tjsp", Status: "ativo"}, 1)
	if err != nil {
		t.Fatalf("Processos() error = %v", err)
	}
	if filtered.Total != 1 || filtered.Processos[0].ID != "p1" {
		t.Fatalf("unexpected filtered listing: %+v", filtered)
	}

	empty, err := s.Processos(ctx, 3, store.ProcessoFilter{}, 50)
	if err != nil {
		t.Fatalf("Processos() error = %v", err)
	}
	if empty.Processos == nil || empty.Total != 0 {
		t.Fatalf("expected empty listing, got %+v", empty)
	}

	if _, err := s.Processos(ctx, 42, store.ProcessoFilter{}, 50); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDoacoes(t *testing.T) {
	t.Parallel()

	s := NewService(store.NewReader(newGateway()), 0)
	ctx := context.Background()

	tests := []struct {
		tipo       DoacaoTipo
		eleicao    string
		wantTotal  int
		wantValor  float64
		wantGroups map[string]int
	}{
		{DoacoesTodas, "", 3, 1520.01, map[string]int{"2022": 1, "2024": 2}},
		{DoacoesFeitas, "", 2, 20.01, map[string]int{"2022": 1, "2024": 1}},
		{DoacoesRecebidas, "", 1, 1500, map[string]int{"2024": 1}},
		{DoacoesFeitas, "2024", 1, 10.01, map[string]int{"2024": 1}},
	}

	for _, tc := range tests {
		t.Run(string(tc.tipo)+tc.eleicao, func(t *testing.T) {
			t.Parallel()
			got, err := s.Doacoes(ctx, 1, tc.tipo, tc.eleicao, 100)
			if err != nil {
				t.Fatalf("Doacoes() error = %v", err)
			}
			if got.Total != tc.wantTotal || got.ValorTotal != tc.wantValor || !reflect.DeepEqual(got.PorEleicao, tc.wantGroups) {
				t.Fatalf("Doacoes() = %+v", got)
			}
		})
	}

	if _, err := s.Doacoes(ctx, 1, "outras", "", 100); !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	none, err := s.Doacoes(ctx, 2, DoacoesTodas, "", 100)
	if err != nil || none.Total != 0 || none.Doacoes == nil {
		t.Fatalf("expected empty donations, got %+v, %v", none, err)
	}
}

func TestFiliacoesAndCandidaturas(t *testing.T) {
	t.Parallel()

	s := NewService(store.NewReader(newGateway()), 0)
	ctx := context.Background()

	f, err := s.Filiacoes(ctx, 1)
	if err != nil {
		t.Fatalf("Filiacoes() error = %v", err)
	}
	if f.Total != 2 || f.Filiacoes[0].ID != "f2" || !reflect.DeepEqual(f.HistoricoPartidos, []string{"PT", "PSD"}) {
		t.Fatalf("unexpected filiacoes: %+v", f)
	}

	c, err := s.Candidaturas(ctx, 1, "")
	if err != nil {
		t.Fatalf("Candidaturas() error = %v", err)
	}
	if c.Total != 3 || c.Candidaturas[0].Eleicao != "2024" {
		t.Fatalf("unexpected candidaturas: %+v", c)
	}
	if !reflect.DeepEqual(c.PorEleicao, map[string]int{"2016": 1, "2020": 1, "2024": 1}) {
		t.Fatalf("unexpected por_eleicao: %v", c.PorEleicao)
	}

	c, err = s.Candidaturas(ctx, 1, "2020")
	if err != nil || c.Total != 1 {
		t.Fatalf("unexpected filtered candidaturas: %+v, %v", c, err)
	}
}

func TestConsultaLogs(t *testing.T) {
	t.Parallel()

	s := NewService(store.NewReader(newGateway()), 0)
	ctx := context.Background()
	id := func(v int64) *int64 { return &v }

	all, err := s.ConsultaLogs(ctx, nil, "", 50)
	if err != nil || len(all) != 3 || all[0].ID != "l3" {
		t.Fatalf("unexpected logs: %+v, %v", all, err)
	}

	mine, err := s.ConsultaLogs(ctx, id(1), "TSE", 50)
	if err != nil || len(mine) != 1 || mine[0].ID != "l1" {
		t.Fatalf("unexpected filtered logs: %+v, %v", mine, err)
	}

	for _, pid := range []int64{3, 42} {
		none, err := s.ConsultaLogs(ctx, id(pid), "", 50)
		if err != nil || none == nil || len(none) != 0 {
			t.Fatalf("politico %d: expected empty logs, got %+v, %v", pid, none, err)
		}
	}
}
