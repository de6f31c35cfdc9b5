package store

import "github.com/diretoriaja/portal/pkg/common"

func DecodePolitico(r Row) common.Politico {
	return common.Politico{
		ID:                r.Int64("id"),
		UUID:              r.String("uuid"),
		Name:              r.String("name"),
		Image:             r.String("image"),
		Description:       r.String("description"),
		Active:            r.Bool("active"),
		Cidade:            r.String("cidade"),
		Estado:            r.String("estado"),
		Funcao:            r.String("funcao"),
		InstagramUsername: r.String("instagram_username"),
		TwitterUsername:   r.String("twitter_username"),
		UsarDiretoriaja:   r.Bool("usar_diretoriaja"),
		CPF:               r.String("cpf"),
	}
}

func DecodeNoticia(r Row) common.Noticia {
	return common.Noticia{
		ID:               r.String("id"),
		PoliticoID:       r.Int64Ptr("politico_id"),
		Tipo:             r.String("tipo"),
		Titulo:           r.String("titulo"),
		Descricao:        r.String("descricao"),
		Conteudo:         r.String("conteudo"),
		URL:              r.String("url"),
		FonteID:          r.String("fonte_id"),
		FonteNome:        r.String("fonte_nome"),
		Estado:           r.String("estado"),
		Cidade:           r.String("cidade"),
		PublicadoEm:      r.Time("publicado_em"),
		ColetadoEm:       r.Time("coletado_em"),
		ScoreRecencia:    r.Float64("score_recencia"),
		ScoreMencao:      r.Float64("score_mencao"),
		ScoreFonte:       r.Float64("score_fonte"),
		ScoreEngajamento: r.Float64("score_engajamento"),
		RelevanciaTotal:  r.Float64("relevancia_total"),
		MencaoTitulo:     r.Bool("mencao_titulo"),
		MencaoConteudo:   int(r.Int64("mencao_conteudo")),
	}
}

func DecodeSocialPost(r Row) common.SocialPost {
	plataforma := r.String("plataforma")
	if plataforma == "" {
		plataforma = "instagram"
	}
	conteudo := r.String("conteudo")
	if conteudo == "" {
		conteudo = r.String("caption")
	}
	return common.SocialPost{
		ID:              r.String("id"),
		PoliticoID:      r.Int64("politico_id"),
		Plataforma:      plataforma,
		URL:             r.String("url"),
		Conteudo:        conteudo,
		MediaURL:        r.String("media_url"),
		Likes:           r.Int64("likes"),
		Comments:        r.Int64("comments"),
		Shares:          r.Int64("shares"),
		Views:           r.Int64("views"),
		EngagementScore: r.Float64("engagement_score"),
		PostedAt:        r.Time("posted_at"),
	}
}

func DecodeSocialMention(r Row) common.SocialMention {
	return common.SocialMention{
		ID:              r.String("id"),
		PoliticoID:      r.Int64("politico_id"),
		Plataforma:      r.String("plataforma"),
		Autor:           r.String("autor"),
		Conteudo:        r.String("conteudo"),
		URL:             r.String("url"),
		Assunto:         r.String("assunto"),
		AssuntoDetalhe:  r.String("assunto_detalhe"),
		Sentimento:      r.String("sentimento"),
		Likes:           r.Int64("likes"),
		Reposts:         r.Int64("reposts"),
		Replies:         r.Int64("replies"),
		EngagementScore: r.Float64("engagement_score"),
		PostedAt:        r.Time("posted_at"),
	}
}

func DecodeMentionTopic(r Row) common.MentionTopic {
	return common.MentionTopic{
		PoliticoID:       r.Int64("politico_id"),
		Assunto:          r.String("assunto"),
		TotalMencoes:     r.Int64("total_mencoes"),
		MencoesPositivas: r.Int64("mencoes_positivas"),
		MencoesNegativas: r.Int64("mencoes_negativas"),
		MencoesNeutras:   r.Int64("mencoes_neutras"),
		EngagementTotal:  r.Float64("engagement_total"),
	}
}

func DecodeTwitterSnapshot(r Row) common.TwitterSnapshot {
	return common.TwitterSnapshot{
		PoliticoID:      r.Int64("politico_id"),
		TwitterUsername: r.String("twitter_username"),
		FollowersCount:  r.Int64Ptr("followers_count"),
		ComputedAt:      r.Time("computed_at"),
	}
}

func DecodeProcesso(r Row) common.ProcessoJudicial {
	return common.ProcessoJudicial{
		ID:                r.String("id"),
		PoliticoID:        r.String("politico_id"),
		NumeroProcesso:    r.String("numero_processo"),
		Tribunal:          r.String("tribunal"),
		Tipo:              r.String("tipo"),
		Classe:            r.String("classe"),
		Assunto:           r.String("assunto"),
		Status:            r.String("status"),
		Polo:              r.String("polo"),
		DataAjuizamento:   r.Time("data_ajuizamento"),
		UltimaAtualizacao: r.Time("ultima_atualizacao"),
	}
}

func DecodeDoacao(r Row) common.DoacaoEleitoral {
	return common.DoacaoEleitoral{
		ID:            r.String("id"),
		CPFDoador:     r.String("cpf_doador"),
		NomeDoador:    r.String("nome_doador"),
		CPFCandidato:  r.String("cpf_candidato"),
		NomeCandidato: r.String("nome_candidato"),
		Partido:       r.String("partido"),
		Valor:         r.Float64("valor"),
		Eleicao:       r.String("eleicao"),
		DataDoacao:    r.Time("data_doacao"),
	}
}

func DecodeFiliacao(r Row) common.FiliacaoPartidaria {
	return common.FiliacaoPartidaria{
		ID:              r.String("id"),
		PoliticoID:      r.String("politico_id"),
		SiglaPartido:    r.String("sigla_partido"),
		Partido:         r.String("partido"),
		DataFiliacao:    r.Time("data_filiacao"),
		DataDesfiliacao: r.Time("data_desfiliacao"),
		Situacao:        r.String("situacao"),
	}
}

func DecodeCandidatura(r Row) common.Candidatura {
	return common.Candidatura{
		ID:                  r.String("id"),
		PoliticoID:          r.String("politico_id"),
		Eleicao:             r.String("eleicao"),
		Cargo:               r.String("cargo"),
		Partido:             r.String("partido"),
		NumeroUrna:          r.String("numero_urna"),
		SituacaoTotalizacao: r.String("situacao_totalizacao"),
		TotalVotos:          r.Int64("total_votos"),
	}
}

func DecodeColetaLog(r Row) common.ColetaLog {
	return common.ColetaLog{
		ID:           r.String("id"),
		Tipo:         r.String("tipo"),
		Status:       r.String("status"),
		Mensagem:     r.String("mensagem"),
		Registros:    r.Int64("registros"),
		IniciadoEm:   r.Time("iniciado_em"),
		FinalizadoEm: r.Time("finalizado_em"),
	}
}

func DecodeConsultaLog(r Row) common.ConsultaLog {
	return common.ConsultaLog{
		ID:           r.String("id"),
		PoliticoID:   r.String("politico_id"),
		Fonte:        r.String("fonte"),
		Status:       r.String("status"),
		Mensagem:     r.String("mensagem"),
		Registros:    r.Int64("registros"),
		IniciadoEm:   r.Time("iniciado_em"),
		FinalizadoEm: r.Time("finalizado_em"),
	}
}

func DecodeTrendingTopic(r Row) common.TrendingTopic {
	return common.TrendingTopic{
		ID:         r.String("id"),
		Category:   r.String("category"),
		Rank:       int(r.Int64("rank")),
		Title:      r.String("title"),
		Subtitle:   r.String("subtitle"),
		URL:        r.String("url"),
		ColetadoEm: r.Time("coletado_em"),
	}
}

func DecodeFonte(r Row) common.FonteNoticia {
	return common.FonteNoticia{
		ID:                 r.String("id"),
		Nome:               r.String("nome"),
		Dominio:            r.String("dominio"),
		PesoConfiabilidade: r.Float64("peso_confiabilidade"),
		Ativo:              r.Bool("ativo"),
	}
}

// DecodeAll maps every row through decode.
func DecodeAll[T any](rows []Row, decode func(Row) T) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, decode(r))
	}
	return out
}
