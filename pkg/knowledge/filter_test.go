package knowledge

import (
	"testing"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name       string
		domain     string
		text       string
		wantTopics []string
	}{
		{
			name:       "card blocking",
			domain:     "cards",
			text:       "preciso desbloquear meu cartão",
			wantTopics: []string{"blocking"},
		},
		{
			name:       "billing and limits together",
			domain:     "cards",
			text:       "a fatura veio errada e quero aumento de limite",
			wantTopics: []string{"billing", "limits"},
		},
		{
			name:       "pix",
			domain:     "digital_account",
			text:       "meu pix não caiu",
			wantTopics: []string{"pix"},
		},
		{
			name:       "loan rates",
			domain:     "loans",
			text:       "qual a taxa de juros?",
			wantTopics: []string{"rates"},
		},
		{
			name:       "app access",
			domain:     "technical",
			text:       "esqueci minha senha de login",
			wantTopics: []string{"access"},
		},
		{
			name:       "no cue words",
			domain:     "cards",
			text:       "tenho uma pergunta",
			wantTopics: nil,
		},
		{
			name:       "unknown domain",
			domain:     "mystery",
			text:       "fatura",
			wantTopics: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := BuildFilter(tt.domain, tt.text)

			if f.Domain != tt.domain {
				t.Errorf("Domain = %q, want %q", f.Domain, tt.domain)
			}

			// Topic inference iterates a map: compare as sets.
			got := make(map[string]bool, len(f.Topics))
			for _, topic := range f.Topics {
				got[topic] = true
			}
			if len(got) != len(tt.wantTopics) {
				t.Fatalf("Topics = %v, want %v", f.Topics, tt.wantTopics)
			}
			for _, want := range tt.wantTopics {
				if !got[want] {
					t.Errorf("Topics = %v, missing %q", f.Topics, want)
				}
			}
		})
	}
}
