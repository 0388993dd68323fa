package bootstrap

import (
	"context"
	"log"
	"time"

	"support-routing-be/internal/config"
	"support-routing-be/internal/controller"
	"support-routing-be/internal/handler"
	"support-routing-be/internal/pkg/logger"
	"support-routing-be/internal/pkg/mailer"
	"support-routing-be/internal/repository/implementation"
	"support-routing-be/internal/repository/memory"
	"support-routing-be/internal/repository/unitofwork"
	"support-routing-be/internal/service"
	"support-routing-be/internal/websocket"
	"support-routing-be/pkg/embedding"
	"support-routing-be/pkg/escalation"
	"support-routing-be/pkg/knowledge"
	"support-routing-be/pkg/learning"
	"support-routing-be/pkg/routing"
	"support-routing-be/pkg/ticket"

	pktNats "support-routing-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	TurnController    controller.ITurnController
	TicketController  controller.ITicketController
	SessionController controller.ISessionController
	AuthController    controller.IAuthController

	// Background Services (Exposed for main.go to run)
	PatternConsumer service.IPatternConsumerService
	SLASweeper      *service.SLASweeper

	// WebSockets & Ops
	OpsHandler   *handler.OpsHandler
	WebSocketHub *websocket.Hub

	NatsPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
		cfg.SMTP.OpsEmail,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embeddings for the knowledge corpus
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Knowledge.OllamaBaseURL,
		cfg.Knowledge.EmbeddingModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Knowledge.EmbeddingModel)

	// In-memory session storage (hot copy + lane locks)
	sessionRepo := memory.NewSessionRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub for operator dashboards
	wsLogger := logger.NewIsolatedLogger("logs/ops_events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Decision Engine
	aggregator := learning.NewAggregator(
		implementation.NewPatternRecordRepository(db),
		cfg.Learning.MinSamples,
		sysLogger,
	)
	recorder := learning.NewRecorder(pubSub, cfg.App.PatternTopic, sysLogger)

	router := routing.NewEngine(routing.DefaultRules(), routing.Options{
		Threshold:       cfg.Routing.Threshold,
		AmbiguityMargin: cfg.Routing.AmbiguityMargin,
		ContinuityBonus: cfg.Routing.ContinuityBonus,
	}, sysLogger)

	escalationManager := escalation.NewManager(escalation.Options{
		FailedAttemptLimit: cfg.Escalation.FailedAttemptLimit,
		InteractionCeiling: cfg.Escalation.InteractionCeiling,
		OverrideMinimum:    cfg.Learning.OverrideMinimum,
	}, aggregator, sysLogger)

	var queuePublisher escalation.QueuePublisher
	if natsPub != nil {
		queuePublisher = natsPub
	}
	notifier := escalation.NewNotifier(queuePublisher, emailService, escalation.NotifierOptions{
		MaxRetries:     cfg.Escalation.NotifyMaxRetries,
		InitialBackoff: cfg.Escalation.NotifyInitialBackoff,
	}, sysLogger)

	ticketManager := ticket.NewManager(
		implementation.NewTicketRepository(db),
		ticket.NewProtocolGenerator(),
		ticket.SLADeadlines{
			Critical: cfg.SLA.Critical,
			High:     cfg.SLA.High,
			Medium:   cfg.SLA.Medium,
			Low:      cfg.SLA.Low,
		},
		sysLogger,
	)

	knowledgeStore := knowledge.NewStore(
		implementation.NewKnowledgeChunkRepository(db),
		embeddingProvider,
		cfg.Knowledge.SearchTimeout,
		cfg.Knowledge.TopK,
		sysLogger,
	)

	// 4. Services
	turnService := service.NewTurnService(
		uowFactory,
		sessionRepo,
		router,
		escalationManager,
		notifier,
		ticketManager,
		knowledgeStore,
		aggregator,
		wsHub,
		sysLogger,
	)
	ticketService := service.NewTicketService(
		uowFactory,
		sessionRepo,
		ticketManager,
		escalationManager,
		recorder,
		emailService,
		wsHub,
		sysLogger,
	)
	sessionService := service.NewSessionService(uowFactory, sessionRepo)
	authService := service.NewAuthService(uowFactory)

	patternConsumer := service.NewPatternConsumerService(
		pubSub,
		cfg.App.PatternTopic,
		uowFactory,
		aggregator,
	)

	slaSweeper := service.NewSLASweeper(ticketService, time.Minute, sysLogger)

	opsHandler := handler.NewOpsHandler(ticketService, wsHub, sysLogger)

	// 5. Controllers
	return &Container{
		TurnController:    controller.NewTurnController(turnService),
		TicketController:  controller.NewTicketController(ticketService),
		SessionController: controller.NewSessionController(sessionService),
		AuthController:    controller.NewAuthController(authService),

		PatternConsumer: patternConsumer,
		SLASweeper:      slaSweeper,

		OpsHandler:   opsHandler,
		WebSocketHub: wsHub,

		NatsPublisher: natsPub,
	}
}
