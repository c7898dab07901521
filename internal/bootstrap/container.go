// Package bootstrap wires configuration into repositories, infrastructure
// adapters and use cases for the api and worker binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"event_marketplace/internal/adapter/persistence/memory"
	"event_marketplace/internal/adapter/persistence/postgres"
	"event_marketplace/internal/adapter/persistence/repository"
	"event_marketplace/internal/infrastructure/config"
	"event_marketplace/internal/infrastructure/database"
	"event_marketplace/internal/infrastructure/locking"
	"event_marketplace/internal/infrastructure/notification"
	"event_marketplace/internal/infrastructure/payments"
	"event_marketplace/internal/usecase"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

// Container holds the process-wide use cases and the resources to release
// on shutdown.
type Container struct {
	Config config.Config
	Log    zerolog.Logger

	Quotes   usecase.IQuoteUseCase
	Bookings usecase.IBookingUseCase
	Payments usecase.IPaymentUseCase
	Listings usecase.IListingUseCase

	closers []func() error
}

type repositories struct {
	quotes   interfaces.IQuoteRepository
	bookings interfaces.IBookingRepository
	sessions interfaces.IPaymentSessionRepository
	listings interfaces.IListingRepository
	tx       interfaces.ITransactionalRepository
}

func New(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	repos, err := c.openStore(ctx)
	if err != nil {
		return nil, c.fail(err)
	}
	locker, err := c.openLocker(ctx)
	if err != nil {
		return nil, c.fail(err)
	}
	gateway, err := c.openGateway()
	if err != nil {
		return nil, c.fail(err)
	}
	notifier, err := c.openNotifier()
	if err != nil {
		return nil, c.fail(err)
	}

	opts := UseCaseOptions(cfg, log)
	factory := usecase.NewBookingFactory(opts...)
	c.Quotes = usecase.NewQuoteUseCase(repos.quotes, repos.tx, factory, locker, notifier, opts...)
	c.Bookings = usecase.NewBookingUseCase(repos.bookings, repos.listings, factory, locker, notifier, opts...)
	c.Payments = usecase.NewPaymentUseCase(repos.sessions, repos.bookings, repos.tx, gateway, locker, notifier, opts...)
	c.Listings = usecase.NewListingUseCase(repos.listings, opts...)
	return c, nil
}

// UseCaseOptions maps the business settings of cfg to use case options.
func UseCaseOptions(cfg config.Config, log zerolog.Logger) []usecase.Option {
	return []usecase.Option{
		usecase.WithLogger(log),
		usecase.WithCurrency(cfg.Currency),
		usecase.WithDefaultDepositPercent(cfg.DepositPercent),
		usecase.WithBalanceLeadTime(cfg.BalanceLeadTime),
		usecase.WithBalanceReminderWindow(cfg.BalanceReminderWindow),
		usecase.WithPaymentSessionTTL(cfg.PaymentSessionTTL),
		usecase.WithGatewayRetry(cfg.GatewayMaxAttempts, cfg.GatewayRetryBackoff),
	}
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *Container) fail(err error) error {
	if cerr := c.Close(); cerr != nil {
		c.Log.Warn().Err(cerr).Msg("release after failed startup")
	}
	return err
}

func (c *Container) openStore(ctx context.Context) (repositories, error) {
	switch c.Config.Store {
	case config.StoreMemory:
		c.Log.Warn().Msg("using in-memory store; data is lost on restart")
		s := memory.NewStore()
		return repositories{
			quotes:   s.Quotes(),
			bookings: s.Bookings(),
			sessions: s.PaymentSessions(),
			listings: s.Listings(),
			tx:       s.Transactions(),
		}, nil

	case config.StorePostgres:
		pool, err := database.ConnectPostgres(ctx, c.Config.DatabaseURL)
		if err != nil {
			return repositories{}, err
		}
		c.closers = append(c.closers, func() error { pool.Close(); return nil })
		if err := postgres.Migrate(ctx, pool); err != nil {
			return repositories{}, fmt.Errorf("migrate: %w", err)
		}
		return repositories{
			quotes:   postgres.NewQuoteRepository(pool),
			bookings: postgres.NewBookingRepository(pool),
			sessions: postgres.NewPaymentSessionRepository(pool),
			listings: postgres.NewListingRepository(pool),
			tx:       postgres.NewTransactionRepository(pool),
		}, nil

	default:
		ddb, err := database.ConnectDynamoDB(ctx)
		if err != nil {
			return repositories{}, err
		}
		quotes := repository.NewQuoteDynamoRepository(ddb, "")
		bookings := repository.NewBookingDynamoRepository(ddb, "")
		sessions := repository.NewPaymentSessionDynamoRepository(ddb, "")
		return repositories{
			quotes:   quotes,
			bookings: bookings,
			sessions: sessions,
			listings: repository.NewListingDynamoRepository(ddb, ""),
			tx:       repository.NewTransactionDynamoRepository(ddb, quotes, bookings, sessions),
		}, nil
	}
}

func (c *Container) openLocker(ctx context.Context) (interfaces.ILocker, error) {
	if c.Config.RedisAddr == "" {
		c.Log.Info().Msg("REDIS_ADDR not set, locking within this process only")
		return locking.NewMemoryLocker(c.Config.LockWait), nil
	}
	client, err := database.ConnectRedis(ctx, c.Config.RedisAddr, c.Config.RedisPassword)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, client.Close)
	return locking.NewRedisLocker(client, c.Config.LockTTL, c.Config.LockWait, c.Log), nil
}

func (c *Container) openGateway() (interfaces.IPaymentGateway, error) {
	switch c.Config.Gateway {
	case config.GatewayMock:
		return payments.NewMockGateway(c.Config.PaymentReturnURL, c.Log), nil
	case config.GatewayOmise:
		return payments.NewOmiseGateway(payments.OmiseOptions{
			PublicKey:  c.Config.OmisePublicKey,
			SecretKey:  c.Config.OmiseSecretKey,
			SourceType: c.Config.OmiseSourceType,
			ReturnURL:  c.Config.PaymentReturnURL,
		}, c.Log)
	default:
		return payments.NewMercadoPagoGateway(payments.MercadoPagoOptions{
			AccessToken:     c.Config.MercadoPagoAccessToken,
			ReturnURL:       c.Config.PaymentReturnURL,
			NotificationURL: c.Config.PaymentNotificationURL,
		}, c.Log)
	}
}

func (c *Container) openNotifier() (interfaces.INotifier, error) {
	switch c.Config.Notifier {
	case config.NotifierKafka:
		n := notification.NewKafkaNotifier(c.Config.KafkaBrokers, c.Config.KafkaTopic, c.Log)
		c.closers = append(c.closers, n.Close)
		return n, nil
	case config.NotifierRabbit:
		n, err := notification.NewRabbitNotifier(c.Config.RabbitURL, c.Config.RabbitExchange, c.Log)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, n.Close)
		return n, nil
	default:
		return notification.NewLogNotifier(c.Log), nil
	}
}

// Consumer reads lifecycle events back from the configured broker.
type Consumer interface {
	Run(ctx context.Context, handle notification.Handler) error
	Close() error
}

// NewConsumer returns the broker consumer for cfg, or nil when events are
// only logged.
func NewConsumer(cfg config.Config, log zerolog.Logger) (Consumer, error) {
	switch cfg.Notifier {
	case config.NotifierKafka:
		return notification.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.KafkaTopic, log), nil
	case config.NotifierRabbit:
		return notification.NewRabbitConsumer(cfg.RabbitURL, cfg.RabbitExchange, cfg.RabbitQueue, log)
	default:
		return nil, nil
	}
}
