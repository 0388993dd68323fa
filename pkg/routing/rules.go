package routing

import "regexp"

// DomainRule is one specialist domain's routing rule set. Rule tables are
// built once at startup and treated as immutable configuration.
type DomainRule struct {
	Domain        string
	Keywords      []string
	Patterns      []*regexp.Regexp // phrase-level, weighted above single keywords
	KeywordWeight float64
	PatternWeight float64
	// Feature names what distinguishes this domain, used to phrase
	// clarification questions ("cartão" vs "saldo da conta").
	Feature string
	// Fallback domains absorb traffic no other domain claims. At most one
	// rule should be a fallback.
	Fallback bool
}

// DefaultRules is the v1 rule table for the specialist domains.
// Portuguese-first vocabulary with English mirrors, same as the signal
// lexicons.
func DefaultRules() []DomainRule {
	return []DomainRule{
		{
			Domain: "cards",
			Keywords: []string{
				"cartão", "cartao", "card", "fatura", "limite", "anuidade",
				"crédito", "credito", "débito", "debito", "bandeira", "senha do cartão",
				"invoice", "contactless", "chip",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)cart[ãa]o\s+(de\s+)?(cr[ée]dito|d[ée]bito)`),
				regexp.MustCompile(`(?i)(bloquear|desbloquear|cancelar)\s+(o\s+)?cart[ãa]o`),
				regexp.MustCompile(`(?i)(block|unblock|cancel)\s+(my\s+)?card`),
				regexp.MustCompile(`(?i)aumento\s+de\s+limite`),
			},
			KeywordWeight: 1.0,
			PatternWeight: 2.5,
			Feature:       "seu cartão",
		},
		{
			Domain: "digital_account",
			Keywords: []string{
				"conta", "saldo", "extrato", "pix", "transferência", "transferencia",
				"ted", "doc", "depósito", "deposito", "pagamento", "boleto",
				"account", "balance", "statement", "transfer", "payment",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)saldo\s+(da\s+)?conta`),
				regexp.MustCompile(`(?i)pix\s+(n[ãa]o\s+)?(caiu|chegou|funciona)`),
				regexp.MustCompile(`(?i)(account\s+balance|bank\s+statement)`),
				regexp.MustCompile(`(?i)transfer[êe]ncia\s+(n[ãa]o\s+)?(caiu|chegou)`),
			},
			KeywordWeight: 1.0,
			PatternWeight: 2.5,
			Feature:       "sua conta digital",
		},
		{
			Domain: "loans",
			Keywords: []string{
				"empréstimo", "emprestimo", "financiamento", "parcela", "juros",
				"consignado", "refinanciamento", "quitação", "quitacao", "dívida", "divida",
				"loan", "installment", "interest", "refinance", "debt",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(simular|contratar|quitar)\s+(um\s+)?empr[ée]stimo`),
				regexp.MustCompile(`(?i)taxa\s+de\s+juros`),
				regexp.MustCompile(`(?i)(apply\s+for|pay\s+off)\s+(a\s+)?loan`),
			},
			KeywordWeight: 1.0,
			PatternWeight: 2.5,
			Feature:       "seu empréstimo",
		},
		{
			Domain: "technical",
			Keywords: []string{
				"aplicativo", "app", "site", "login", "senha", "acesso", "erro",
				"travou", "atualização", "atualizacao", "notificação", "notificacao",
				"password", "crash", "update", "browser",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(app|aplicativo)\s+(n[ãa]o\s+)?(abre|funciona|carrega)`),
				regexp.MustCompile(`(?i)(esqueci|recuperar|redefinir)\s+(a\s+)?senha`),
				regexp.MustCompile(`(?i)(can'?t|cannot)\s+log\s*in`),
				regexp.MustCompile(`(?i)error\s+\d{3}`),
			},
			KeywordWeight: 1.0,
			PatternWeight: 2.5,
			Feature:       "o aplicativo",
		},
		{
			Domain: "general_support",
			Keywords: []string{
				"ajuda", "dúvida", "duvida", "informação", "informacao", "horário",
				"horario", "atendimento", "sugestão", "sugestao", "reclamação", "reclamacao",
				"help", "question", "suggestion", "feedback", "complaint",
			},
			Patterns:      nil,
			KeywordWeight: 0.5, // generic vocabulary should not outscore specialists
			PatternWeight: 0,
			Feature:       "sua dúvida",
			Fallback:      true,
		},
	}
}
