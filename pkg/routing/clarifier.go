package routing

import "fmt"

// Clarification messages are customer-facing; Portuguese like the rest of
// the customer surface.

const (
	clarifyNeedMoreInfo = "Pode me contar um pouco mais sobre o que você precisa? Assim te direciono para o especialista certo."
	clarifyGeneric      = "Não consegui identificar o assunto. Sua dúvida é sobre cartão, conta digital, empréstimo ou um problema no aplicativo?"
)

// clarify phrases a single question targeting the distinguishing feature of
// the top two candidates. At most one clarification round happens per issue;
// the caller forces a best-effort choice on the following turn.
func (e *Engine) clarify(candidates []Candidate) string {
	if len(candidates) < 2 {
		return clarifyGeneric
	}

	first := e.feature(candidates[0].Domain)
	second := e.feature(candidates[1].Domain)
	if first == "" || second == "" || first == second {
		return clarifyGeneric
	}

	return fmt.Sprintf("Só para confirmar: sua dúvida é sobre %s ou sobre %s?", first, second)
}

func (e *Engine) feature(domain string) string {
	for _, rule := range e.rules {
		if rule.Domain == domain {
			return rule.Feature
		}
	}
	return ""
}
