package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/config"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/controller"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/handler"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/hours"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/crypto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/mailer"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/unitofwork"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/service"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/websocket"
	pktNats "github.com/sansitamalhotra/ChatBot-sub003/pkg/nats"
	"github.com/sansitamalhotra/ChatBot-sub003/pkg/render"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// fanoutTopic is the in-process bus topic between the message pipeline and
// the websocket hub.
const fanoutTopic = "chat_fanout"

type Container struct {
	Logger       logger.ILogger
	WebSocketHub *websocket.Hub

	SessionService    service.ISessionService
	MessageService    service.IMessageService
	ConsumerService   service.IConsumerService
	EscalationService service.IEscalationService

	ChatController     controller.IChatController
	HoursController    controller.IHoursController
	AgentController    controller.IAgentController
	TemplateController controller.ITemplateController
	ChatWsHandler      *handler.ChatWsHandler
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	for _, warning := range cfg.Warnings() {
		sysLogger.Warn("bootstrap", warning, nil)
	}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	codec, err := crypto.NewCodec(cfg.Chat.EncryptionKey)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize message codec: %v", err)
	}

	renderer := render.NewRenderer()
	hoursCache := hours.NewConfigCache(time.Duration(cfg.Chat.HoursCacheTTLMinutes) * time.Minute)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/chat_fanout.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(fanoutTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, fanoutTopic, wsHub)

	writer := service.NewMessageWriter(uowFactory, codec, publisherService, sysLogger)
	scheduler := service.NewReplyScheduler()

	hoursService := service.NewHoursService(uowFactory, hoursCache, sysLogger)
	assignmentService := service.NewAssignmentService(uowFactory, sysLogger)
	templateService := service.NewTemplateService(uowFactory, renderer, sysLogger)
	agentService := service.NewAgentService(uowFactory, sysLogger)

	sessionService := service.NewSessionService(
		uowFactory,
		hoursService,
		assignmentService,
		templateService,
		writer,
		publisherService,
		natsPub,
		scheduler,
		renderer,
		sysLogger,
		time.Duration(cfg.Chat.SessionIdleTimeoutMinutes)*time.Minute,
	)

	botResponder := service.NewBotResponder(
		uowFactory,
		templateService,
		sessionService,
		hoursService,
		writer,
		scheduler,
		time.Duration(cfg.Chat.BotReplyDelaySeconds)*time.Second,
		sysLogger,
	)

	messageService := service.NewMessageService(
		uowFactory,
		writer,
		codec,
		botResponder,
		publisherService,
		sysLogger,
	)

	escalationService := service.NewEscalationService(natsSub, emailService, cfg.Chat.EscalationEmail, sysLogger)

	// 4. Controllers
	return &Container{
		Logger:       sysLogger,
		WebSocketHub: wsHub,

		SessionService:    sessionService,
		MessageService:    messageService,
		ConsumerService:   consumerService,
		EscalationService: escalationService,

		ChatController:     controller.NewChatController(sessionService, messageService),
		HoursController:    controller.NewHoursController(hoursService),
		AgentController:    controller.NewAgentController(agentService),
		TemplateController: controller.NewTemplateController(templateService),
		ChatWsHandler:      handler.NewChatWsHandler(sessionService, wsHub, wsLogger),
	}
}
