// Seeds a local database with demo data: a regular and a VIP customer, an
// admin operator, and a small knowledge corpus per domain.

package main

import (
	"context"
	"log"
	"time"

	"support-routing-be/internal/config"
	"support-routing-be/internal/entity"
	"support-routing-be/internal/pkg/logger"
	"support-routing-be/internal/repository/implementation"
	"support-routing-be/pkg/database"
	"support-routing-be/pkg/embedding"
	"support-routing-be/pkg/knowledge"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	now := time.Now()

	customers := implementation.NewCustomerRepository(db)
	demoCustomers := []*entity.Customer{
		{Id: uuid.MustParse("a2b94f4c-b674-433b-90be-65a91a37e7a3"), Name: "Ana Souza", Email: "ana@example.com", Vip: false, CreatedAt: now},
		{Id: uuid.MustParse("7f6a1c7e-4c29-4c1f-9a56-0f2a8a5e1d21"), Name: "Bruno Lima", Email: "bruno@example.com", Vip: true, CreatedAt: now},
	}
	for _, c := range demoCustomers {
		if err := customers.Create(ctx, c); err != nil {
			log.Printf("Warn: customer %s: %v", c.Email, err)
		}
	}

	operators := implementation.NewOperatorRepository(db)
	hash, _ := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err := operators.Create(ctx, &entity.Operator{
		Id:           uuid.New(),
		Email:        "admin@example.com",
		Name:         "Admin",
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    now,
	}); err != nil {
		log.Printf("Warn: operator: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	store := knowledge.NewStore(
		implementation.NewKnowledgeChunkRepository(db),
		embedding.NewOllamaProvider(cfg.Knowledge.OllamaBaseURL, cfg.Knowledge.EmbeddingModel),
		cfg.Knowledge.SearchTimeout,
		cfg.Knowledge.TopK,
		sysLogger,
	)

	corpus := map[string]map[string][]string{
		"cards": {
			"blocking": {
				"Para desbloquear o cartão, acesse Cartões > Desbloquear no aplicativo e confirme com sua senha de 4 dígitos.",
				"Cartões bloqueados por suspeita de fraude exigem confirmação de identidade pela central de atendimento.",
			},
			"billing": {
				"A fatura fecha 10 dias antes do vencimento. Compras após o fechamento entram na fatura seguinte.",
			},
		},
		"digital_account": {
			"pix": {
				"Transferências Pix são processadas em até 10 segundos. Se o valor foi debitado e não chegou, o estorno automático ocorre em até 1 hora.",
			},
			"balance": {
				"O extrato dos últimos 12 meses está disponível em Conta > Extrato, com exportação em PDF e CSV.",
			},
		},
		"loans": {
			"rates": {
				"A taxa de juros do empréstimo pessoal varia de 1,9% a 4,5% ao mês conforme o relacionamento e o score.",
			},
		},
		"technical": {
			"access": {
				"Para redefinir a senha do aplicativo use Esqueci minha senha na tela de login. O link enviado por e-mail expira em 1 hora.",
			},
		},
	}

	for domain, topics := range corpus {
		for topic, docs := range topics {
			if err := store.Ingest(ctx, domain, topic, docs); err != nil {
				log.Printf("Warn: ingest %s/%s: %v", domain, topic, err)
				continue
			}
			log.Printf("Seeded %d chunks into %s/%s", len(docs), domain, topic)
		}
	}

	log.Println("✅ Seed complete")
}
