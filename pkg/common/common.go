package common

import "time"

// Politico is a tracked public figure. ID is the public integer id used in
// URLs, UUID is the storage key used by the content collections and CPF is
// the national identifier used by the legal and electoral collections.
//
// CPF is never serialized. Summaries expose it masked only.
type Politico struct {
	ID                int64  `json:"id"`
	UUID              string `json:"uuid,omitempty"`
	Name              string `json:"name"`
	Image             string `json:"image,omitempty"`
	Description       string `json:"description,omitempty"`
	Active            bool   `json:"active"`
	Cidade            string `json:"cidade,omitempty"`
	Estado            string `json:"estado,omitempty"`
	Funcao            string `json:"funcao,omitempty"`
	InstagramUsername string `json:"instagram_username,omitempty"`
	TwitterUsername   string `json:"twitter_username,omitempty"`
	UsarDiretoriaja   bool   `json:"usar_diretoriaja"`
	CPF               string `json:"-"`
}

// Noticia is a news item. It belongs either to one figure (Tipo "politico")
// or to a geographic scope ("cidade", "estado", "geral").
//
// The four sub-scores and the composite RelevanciaTotal are computed
// upstream by the collectors.
type Noticia struct {
	ID               string     `json:"id"`
	PoliticoID       *int64     `json:"politico_id,omitempty"`
	Tipo             string     `json:"tipo,omitempty"`
	Titulo           string     `json:"titulo"`
	Descricao        string     `json:"descricao,omitempty"`
	Conteudo         string     `json:"conteudo,omitempty"`
	URL              string     `json:"url,omitempty"`
	FonteID          string     `json:"fonte_id,omitempty"`
	FonteNome        string     `json:"fonte_nome,omitempty"`
	Estado           string     `json:"estado,omitempty"`
	Cidade           string     `json:"cidade,omitempty"`
	PublicadoEm      *time.Time `json:"publicado_em,omitempty"`
	ColetadoEm       *time.Time `json:"coletado_em,omitempty"`
	ScoreRecencia    float64    `json:"score_recencia"`
	ScoreMencao      float64    `json:"score_mencao"`
	ScoreFonte       float64    `json:"score_fonte"`
	ScoreEngajamento float64    `json:"score_engajamento"`
	RelevanciaTotal  float64    `json:"relevancia_total"`
	MencaoTitulo     bool       `json:"mencao_titulo"`
	MencaoConteudo   int        `json:"mencao_conteudo"`
}

// SocialPost is a post published by a figure on one platform. Posts come from
// the unified social_media_posts collection or the legacy instagram_posts one.
type SocialPost struct {
	ID              string     `json:"id"`
	PoliticoID      int64      `json:"politico_id"`
	Plataforma      string     `json:"plataforma"`
	URL             string     `json:"url,omitempty"`
	Conteudo        string     `json:"conteudo,omitempty"`
	MediaURL        string     `json:"media_url,omitempty"`
	Likes           int64      `json:"likes"`
	Comments        int64      `json:"comments"`
	Shares          int64      `json:"shares"`
	Views           int64      `json:"views"`
	EngagementScore float64    `json:"engagement_score"`
	PostedAt        *time.Time `json:"posted_at,omitempty"`
}

type SocialMention struct {
	ID              string     `json:"id"`
	PoliticoID      int64      `json:"politico_id"`
	Plataforma      string     `json:"plataforma"`
	Autor           string     `json:"autor,omitempty"`
	Conteudo        string     `json:"conteudo,omitempty"`
	URL             string     `json:"url,omitempty"`
	Assunto         string     `json:"assunto,omitempty"`
	AssuntoDetalhe  string     `json:"assunto_detalhe,omitempty"`
	Sentimento      string     `json:"sentimento,omitempty"`
	Likes           int64      `json:"likes"`
	Reposts         int64      `json:"reposts"`
	Replies         int64      `json:"replies"`
	EngagementScore float64    `json:"engagement_score"`
	PostedAt        *time.Time `json:"posted_at,omitempty"`
}

// MentionTopic is the upstream rollup of SocialMention by subject.
type MentionTopic struct {
	PoliticoID       int64   `json:"politico_id"`
	Assunto          string  `json:"assunto"`
	TotalMencoes     int64   `json:"total_mencoes"`
	MencoesPositivas int64   `json:"mencoes_positivas"`
	MencoesNegativas int64   `json:"mencoes_negativas"`
	MencoesNeutras   int64   `json:"mencoes_neutras"`
	EngagementTotal  float64 `json:"engagement_total"`
}

// TwitterSnapshot is the follower count collected for a figure on one day.
type TwitterSnapshot struct {
	PoliticoID      int64      `json:"politico_id"`
	TwitterUsername string     `json:"twitter_username,omitempty"`
	FollowersCount  *int64     `json:"followers_count"`
	ComputedAt      *time.Time `json:"computed_at,omitempty"`
}

type ProcessoJudicial struct {
	ID                string     `json:"id"`
	PoliticoID        string     `json:"politico_id"`
	NumeroProcesso    string     `json:"numero_processo,omitempty"`
	Tribunal          string     `json:"tribunal,omitempty"`
	Tipo              string     `json:"tipo,omitempty"`
	Classe            string     `json:"classe,omitempty"`
	Assunto           string     `json:"assunto,omitempty"`
	Status            string     `json:"status,omitempty"`
	Polo              string     `json:"polo,omitempty"`
	DataAjuizamento   *time.Time `json:"data_ajuizamento,omitempty"`
	UltimaAtualizacao *time.Time `json:"ultima_atualizacao,omitempty"`
}

// DoacaoEleitoral links two national identifiers: the payer (CPFDoador) and
// the recipient (CPFCandidato).
type DoacaoEleitoral struct {
	ID            string     `json:"id"`
	CPFDoador     string     `json:"cpf_doador,omitempty"`
	NomeDoador    string     `json:"nome_doador,omitempty"`
	CPFCandidato  string     `json:"cpf_candidato,omitempty"`
	NomeCandidato string     `json:"nome_candidato,omitempty"`
	Partido       string     `json:"partido,omitempty"`
	Valor         float64    `json:"valor"`
	Eleicao       string     `json:"eleicao,omitempty"`
	DataDoacao    *time.Time `json:"data_doacao,omitempty"`
}

type FiliacaoPartidaria struct {
	ID              string     `json:"id"`
	PoliticoID      string     `json:"politico_id"`
	SiglaPartido    string     `json:"sigla_partido,omitempty"`
	Partido         string     `json:"partido,omitempty"`
	DataFiliacao    *time.Time `json:"data_filiacao,omitempty"`
	DataDesfiliacao *time.Time `json:"data_desfiliacao,omitempty"`
	Situacao        string     `json:"situacao,omitempty"`
}

type Candidatura struct {
	ID                  string `json:"id"`
	PoliticoID          string `json:"politico_id"`
	Eleicao             string `json:"eleicao,omitempty"`
	Cargo               string `json:"cargo,omitempty"`
	Partido             string `json:"partido,omitempty"`
	NumeroUrna          string `json:"numero_urna,omitempty"`
	SituacaoTotalizacao string `json:"situacao_totalizacao,omitempty"`
	TotalVotos          int64  `json:"total_votos"`
}

// ColetaLog is an execution record written by the collection jobs.
type ColetaLog struct {
	ID           string     `json:"id"`
	Tipo         string     `json:"tipo,omitempty"`
	Status       string     `json:"status,omitempty"`
	Mensagem     string     `json:"mensagem,omitempty"`
	Registros    int64      `json:"registros"`
	IniciadoEm   *time.Time `json:"iniciado_em,omitempty"`
	FinalizadoEm *time.Time `json:"finalizado_em,omitempty"`
}

// ConsultaLog is an execution record of an external court-record inquiry.
type ConsultaLog struct {
	ID           string     `json:"id"`
	PoliticoID   string     `json:"politico_id,omitempty"`
	Fonte        string     `json:"fonte,omitempty"`
	Status       string     `json:"status,omitempty"`
	Mensagem     string     `json:"mensagem,omitempty"`
	Registros    int64      `json:"registros"`
	IniciadoEm   *time.Time `json:"iniciado_em,omitempty"`
	FinalizadoEm *time.Time `json:"finalizado_em,omitempty"`
}

type TrendingTopic struct {
	ID         string     `json:"id"`
	Category   string     `json:"category"`
	Rank       int        `json:"rank"`
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle,omitempty"`
	URL        string     `json:"url,omitempty"`
	ColetadoEm *time.Time `json:"coletado_em,omitempty"`
}

type FonteNoticia struct {
	ID                 string  `json:"id"`
	Nome               string  `json:"nome"`
	Dominio            string  `json:"dominio,omitempty"`
	PesoConfiabilidade float64 `json:"peso_confiabilidade"`
	Ativo              bool    `json:"ativo"`
}
