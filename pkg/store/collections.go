package store

import (
	"maps"
	"slices"
)

// Collection names. Content and mention collections are keyed by the integer
// politico id, legal collections by the figure's storage key (uuid) and
// donations by national identifier.
const (
	CollectionPoliticos       = "politico"
	CollectionConcorrentes    = "politico_concorrentes"
	CollectionNoticias        = "noticias"
	CollectionSocialPosts     = "social_media_posts"
	CollectionInstagramPosts  = "instagram_posts"
	CollectionSocialMentions  = "social_mentions"
	CollectionMentionTopics   = "mention_topics"
	CollectionTwitterInsights = "concorrente_twitter_insights"
	CollectionFontes          = "fontes_noticias"
	CollectionTrending        = "portal_trending_topics"
	CollectionColetaLogs      = "coleta_logs"
	CollectionProcessos       = "processos_judiciais"
	CollectionDoacoes         = "doacoes_eleitorais"
	CollectionFiliacoes       = "filiacoes_partidarias"
	CollectionCandidaturas    = "candidaturas"
	CollectionConsultaLogs    = "consulta_processual_logs"
)

const (
	TipoPolitico = "politico"
	TipoCidade   = "cidade"
	TipoEstado   = "estado"
	TipoGeral    = "geral"
)

var capitais = map[string]string{
	"AC": "Rio Branco",
	"AL": "Maceió",
	"AP": "Macapá",
	"AM": "Manaus",
	"BA": "Salvador",
	"CE": "Fortaleza",
	"DF": "Brasília",
	"ES": "Vitória",
	"GO": "Goiânia",
	"MA": "São Luís",
	"MT": "Cuiabá",
	"MS": "Campo Grande",
	"MG": "Belo Horizonte",
	"PA": "Belém",
	"PB": "João Pessoa",
	"PR": "Curitiba",
	"PE": "Recife",
	"PI": "Teresina",
	"RJ": "Rio de Janeiro",
	"RN": "Natal",
	"RS": "Porto Alegre",
	"RO": "Porto Velho",
	"RR": "Boa Vista",
	"SC": "Florianópolis",
	"SP": "São Paulo",
	"SE": "Aracaju",
	"TO": "Palmas",
}

// Capital returns the capital city of a state code, or "" when the code is
// unknown.
func Capital(uf string) string {
	return capitais[uf]
}

// Estados returns every state code that has a capital entry, sorted.
func Estados() []string {
	return slices.Sorted(maps.Keys(capitais))
}
