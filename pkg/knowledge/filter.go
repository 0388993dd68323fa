// Two-layer retrieval filtering: the routed domain is a mandatory filter and
// the hard isolation boundary between specialist corpora; topic inference is
// a best-effort narrowing layer on top of it.

package knowledge

import "strings"

// Filter is the predicate applied to every knowledge search.
type Filter struct {
	Domain string   // mandatory, never inferred
	Topics []string // inferred from the message, may be empty
}

// topicRules maps per-domain topics to their cue words. Inference is
// lightweight on purpose: no model call sits on the message hot path.
var topicRules = map[string]map[string][]string{
	"cards": {
		"billing":  {"fatura", "cobrança", "cobranca", "anuidade", "invoice"},
		"limits":   {"limite", "aumento", "limit"},
		"blocking": {"bloquear", "bloqueado", "desbloquear", "cancelar", "block", "unblock"},
		"rewards":  {"pontos", "milhas", "cashback", "rewards"},
	},
	"digital_account": {
		"pix":       {"pix"},
		"transfers": {"transferência", "transferencia", "ted", "doc", "transfer"},
		"balance":   {"saldo", "extrato", "balance", "statement"},
		"payments":  {"boleto", "pagamento", "payment"},
	},
	"loans": {
		"contracting":  {"simular", "contratar", "simulação", "simulacao", "apply"},
		"payoff":       {"quitar", "quitação", "quitacao", "antecipar", "pay off"},
		"rates":        {"juros", "taxa", "interest", "rate"},
		"installments": {"parcela", "installment"},
	},
	"technical": {
		"access": {"login", "senha", "acesso", "password", "entrar"},
		"app":    {"aplicativo", "app", "travou", "atualização", "atualizacao", "crash"},
		"errors": {"erro", "error", "falha"},
	},
	"general_support": {
		"hours":    {"horário", "horario", "atendimento", "hours"},
		"feedback": {"sugestão", "sugestao", "reclamação", "reclamacao", "feedback"},
	},
}

// BuildFilter derives the search predicate for a message routed to a domain.
func BuildFilter(domain, text string) Filter {
	return Filter{
		Domain: domain,
		Topics: inferTopics(domain, text),
	}
}

func inferTopics(domain, text string) []string {
	rules, ok := topicRules[domain]
	if !ok {
		return nil
	}

	lower := strings.ToLower(text)
	topics := make([]string, 0, 2)
	for topic, cues := range rules {
		for _, cue := range cues {
			if strings.Contains(lower, cue) {
				topics = append(topics, topic)
				break
			}
		}
	}
	return topics
}
