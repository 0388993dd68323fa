package signal

// Static lexicons for signal extraction. Loaded once, never mutated at
// runtime. Portuguese first (primary customer base), English mirrored.

// Frustration severity tiers.
var highSeverityTerms = []string{
	"péssimo", "pessimo", "horrível", "horrivel", "absurdo", "ridículo", "ridiculo",
	"inaceitável", "inaceitavel", "vergonha", "lixo", "nunca mais",
	"terrible", "awful", "unacceptable", "worst", "ridiculous", "disgrace",
}

var mediumSeverityTerms = []string{
	"frustrado", "frustrada", "irritado", "irritada", "cansado de", "de novo",
	"novamente", "ainda não", "ainda nao", "ninguém resolve", "ninguem resolve",
	"frustrated", "annoyed", "again", "still broken", "fed up",
}

var lowSeverityTerms = []string{
	"problema", "não funciona", "nao funciona", "não consigo", "nao consigo",
	"demora", "lento", "ruim",
	"problem", "not working", "can't", "cannot", "slow", "issue",
}

// Explicit human-handoff phrases. Any hit forces frustration to the ceiling
// and emits EXPLICIT_REQUEST.
var explicitRequestPhrases = []string{
	"falar com um atendente", "falar com atendente", "falar com alguém",
	"falar com alguem", "atendente humano", "quero um humano",
	"falar com uma pessoa", "atendimento humano",
	"talk to a human", "speak to an agent", "speak with an agent",
	"human agent", "real person", "talk to someone",
}

// Security/fraud vocabulary. Any hit emits SECURITY_CONCERN.
var securityTerms = []string{
	"fraude", "fraudulento", "clonado", "clonaram", "roubo", "roubaram",
	"não reconheço", "nao reconheco", "invadido", "invadiram", "golpe",
	"fraud", "stolen", "unauthorized", "hacked", "scam", "phishing",
	"cloned card",
}

// Malfunction vocabulary. Any hit emits TECHNICAL_BUG.
var technicalTerms = []string{
	"erro", "bug", "travou", "travando", "caiu", "fora do ar", "não abre",
	"nao abre", "não carrega", "nao carrega", "falha",
	"error", "crash", "crashed", "broken", "down", "not loading", "glitch",
}

// Stop words excluded from keyword hits (Portuguese + English).
var stopWords = map[string]bool{
	"o": true, "a": true, "os": true, "as": true, "um": true, "uma": true,
	"de": true, "do": true, "da": true, "em": true, "no": true, "na": true,
	"que": true, "com": true, "por": true, "para": true, "meu": true,
	"minha": true, "isso": true, "isto": true, "está": true, "esta": true,
	"ser": true, "foi": true, "ja": true, "já": true, "não": true, "nao": true,
	"the": true, "is": true, "are": true, "an": true, "my": true, "your": true,
	"i": true, "me": true, "to": true, "of": true, "and": true, "it": true,
	"this": true, "that": true, "what": true, "was": true,
}
