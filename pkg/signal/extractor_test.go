package signal

import (
	"strings"
	"testing"

	"support-routing-be/internal/entity"
)

func TestExtractTriggers(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantTriggers []entity.EscalationTrigger
		wantCeiling  bool
	}{
		{
			name:         "neutral message",
			text:         "qual o horário de atendimento?",
			wantTriggers: nil,
			wantCeiling:  false,
		},
		{
			name:         "explicit handoff request forces ceiling",
			text:         "quero falar com um atendente agora",
			wantTriggers: []entity.EscalationTrigger{entity.TriggerExplicitRequest},
			wantCeiling:  true,
		},
		{
			name:         "explicit handoff in english",
			text:         "I want to talk to a human please",
			wantTriggers: []entity.EscalationTrigger{entity.TriggerExplicitRequest},
			wantCeiling:  true,
		},
		{
			name:         "security vocabulary",
			text:         "meu cartão foi clonado, tem uma compra que não reconheço",
			wantTriggers: []entity.EscalationTrigger{entity.TriggerSecurityConcern},
			wantCeiling:  false,
		},
		{
			name:         "technical vocabulary",
			text:         "o aplicativo travou de novo na tela de login",
			wantTriggers: []entity.EscalationTrigger{entity.TriggerTechnicalBug},
			wantCeiling:  false,
		},
		{
			name: "security and technical stack",
			text: "apareceu um erro e acho que foi fraude",
			wantTriggers: []entity.EscalationTrigger{
				entity.TriggerSecurityConcern,
				entity.TriggerTechnicalBug,
			},
			wantCeiling: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := Extract(tt.text, &entity.Session{})

			if ext.ForceCeiling != tt.wantCeiling {
				t.Errorf("ForceCeiling = %v, want %v", ext.ForceCeiling, tt.wantCeiling)
			}
			if len(ext.Triggers) != len(tt.wantTriggers) {
				t.Fatalf("Triggers = %v, want %v", ext.Triggers, tt.wantTriggers)
			}
			for _, want := range tt.wantTriggers {
				if !entity.ContainsTrigger(ext.Triggers, want) {
					t.Errorf("Triggers = %v, missing %v", ext.Triggers, want)
				}
			}
		})
	}
}

func TestExtractFrustrationDelta(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantDelta int
	}{
		{
			name:      "neutral question",
			text:      "como aumento o limite?",
			wantDelta: 0,
		},
		{
			name:      "single low severity term",
			text:      "o pix está lento hoje",
			wantDelta: 0, // 0.5 truncates to 0
		},
		{
			name:      "two low severity terms",
			text:      "tenho um problema, o app está lento",
			wantDelta: 1,
		},
		{
			name:      "medium severity",
			text:      "estou frustrado, de novo a mesma coisa",
			wantDelta: 2,
		},
		{
			name:      "high severity word",
			text:      "isso é um absurdo",
			wantDelta: 2,
		},
		{
			name:      "shouting in caps",
			text:      "CADE O MEU DINHEIRO",
			wantDelta: 1,
		},
		{
			name:      "repeated punctuation",
			text:      "cadê minha transferência??",
			wantDelta: 1,
		},
		{
			name:      "elongated word",
			text:      "socorrooooo preciso de ajuda",
			wantDelta: 0, // 0.5 alone truncates
		},
		{
			name:      "stacked markers clamp at three",
			text:      "ABSURDO RIDICULO INACEITAVEL!!! que vergonha",
			wantDelta: 3,
		},
		{
			name:      "short acronym is not shouting",
			text:      "TED caiu?",
			wantDelta: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := Extract(tt.text, &entity.Session{})
			if ext.FrustrationDelta != tt.wantDelta {
				t.Errorf("FrustrationDelta = %d, want %d", ext.FrustrationDelta, tt.wantDelta)
			}
		})
	}
}

func TestExtractComplexIssue(t *testing.T) {
	long := strings.Repeat("detalhe importante sobre minha conta ", 20) // well past 60 words
	ext := Extract(long, &entity.Session{})

	if !entity.ContainsTrigger(ext.Triggers, entity.TriggerComplexIssue) {
		t.Errorf("long message should emit COMPLEX_ISSUE, got %v", ext.Triggers)
	}
}

func TestExtractKeywords(t *testing.T) {
	ext := Extract("o meu cartão não funciona, preciso de ajuda!", &entity.Session{})

	want := map[string]bool{"cartão": true, "funciona": true, "preciso": true, "ajuda": true}
	for _, kw := range ext.KeywordHits {
		if !want[kw] {
			t.Errorf("unexpected keyword %q", kw)
		}
		delete(want, kw)
	}
	for kw := range want {
		t.Errorf("missing keyword %q in %v", kw, ext.KeywordHits)
	}
}
