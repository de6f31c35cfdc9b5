package server

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/diretoriaja/portal/internal/proxy"
	"github.com/diretoriaja/portal/internal/queue"
	mid "github.com/diretoriaja/portal/internal/server/middleware"
	"github.com/diretoriaja/portal/internal/storage"
	"github.com/diretoriaja/portal/internal/util"
	"github.com/diretoriaja/portal/pkg/ai"
	oai "github.com/diretoriaja/portal/pkg/ai/ollama"
	gai "github.com/diretoriaja/portal/pkg/ai/openai"
	"github.com/diretoriaja/portal/pkg/leaselock"
	"github.com/diretoriaja/portal/pkg/legal"
	"github.com/diretoriaja/portal/pkg/logger"
	"github.com/diretoriaja/portal/pkg/relevance"
	"github.com/diretoriaja/portal/pkg/resume"
	"github.com/diretoriaja/portal/pkg/store"
	"github.com/diretoriaja/portal/pkg/store/memory"
	pgstore "github.com/diretoriaja/portal/pkg/store/pgx"
	"github.com/diretoriaja/portal/pkg/topics"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// deps holds the process-wide connections. Every optional one may be nil.
type deps struct {
	gateway store.Gateway
	writer  store.Writer
	locker  leaselock.Locker

	pool   *pgxpool.Pool
	broker *amqp091.Connection
	ch     *amqp091.Channel

	key    keyfunc.Keyfunc
	images *proxy.ImageProxy
	ai     ai.Client
}

func openDeps(ctx context.Context) (*deps, error) {
	d := &deps{}
	if err := d.openStore(ctx); err != nil {
		return nil, err
	}
	d.openQueue()

	if authURL := util.GetEnv("AUTH_URL"); authURL != "" {
		k, err := keyfunc.NewDefault([]string{authURL + "/jwks"})
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("load jwks keys: %w", err)
		}
		d.key = k
	} else {
		logger.Warn("[Server] AUTH_URL not set, admin routes accept the master key only")
	}

	s3Client, err := storage.NewS3Client(ctx)
	if err != nil {
		d.Close()
		return nil, err
	}
	opts := []proxy.Option{}
	if s3Client != nil {
		opts = append(opts, proxy.WithCache(storage.NewS3Store(s3Client, util.GetEnv("AWS_BUCKET"), "proxy/images/")))
	}
	d.images = proxy.NewImageProxy(util.GetEnvNumeric("PROXY_RPS", 5), opts...)

	d.ai, err = newAIClient()
	if err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// openStore connects to Postgres when DATABASE_URL is set and falls back to
// an in-memory gateway seeded from FIXTURES_PATH otherwise.
func (d *deps) openStore(ctx context.Context) error {
	dsn := util.GetEnv("DATABASE_URL")
	if dsn == "" {
		logger.Warn("[Server] DATABASE_URL not set, serving from memory")
		gw, err := loadFixtures(util.GetEnv("FIXTURES_PATH"))
		if err != nil {
			return err
		}
		d.gateway, d.writer = gw, gw
		d.locker = leaselock.NewMemory()
		return nil
	}

	if util.GetEnvBool("MIGRATE", false) {
		if err := runMigrations(util.GetEnvString("MIGRATIONS_PATH", "migrations"), dsn); err != nil {
			return err
		}
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	gw := pgstore.NewGateway(pool, pgstore.WithMaxTries(int(util.GetEnvNumeric("GATEWAY_MAX_TRIES", 3))))

	d.pool = pool
	d.gateway, d.writer = gw, gw
	d.locker = leaselock.New(pool)
	return nil
}

func loadFixtures(path string) (*memory.Gateway, error) {
	if path == "" {
		return memory.New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return memory.Load(f)
}

func runMigrations(path, dsn string) error {
	m, err := migrate.New("file://"+path, dsn)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("[Server] Migrations applied", "path", path)
	return nil
}

// openQueue connects to RabbitMQ. The API keeps serving reads without a
// broker; job triggers then answer 503.
func (d *deps) openQueue() {
	conn, err := queue.Init()
	if err != nil {
		logger.Warn("[Server] Message broker unavailable", "err", err)
		return
	}
	ch, err := conn.Channel()
	if err != nil {
		logger.Warn("[Server] Failed to open channel", "err", err)
		conn.Close()
		return
	}
	if err := queue.SetupQueues(ch, []string{queue.ColetaQueue}); err != nil {
		logger.Warn("[Server] Failed to declare queues", "err", err)
		ch.Close()
		conn.Close()
		return
	}
	d.broker, d.ch = conn, ch
}

func newAIClient() (ai.Client, error) {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			ChatModel: util.GetEnv("AI_CHAT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 2)),
		})
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		return client, nil
	default:
		client := gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			ChatModel: util.GetEnv("AI_CHAT_MODEL"),
			ChatURL:   util.GetEnv("AI_CHAT_URL"),
			ChatKey:   util.GetEnv("AI_CHAT_KEY"),
		})
		if client == nil {
			logger.Info("[Server] AI_CHAT_KEY not set, news analysis runs without summaries")
			return nil, nil
		}
		return client, nil
	}
}

// App wires the domain services over the opened connections.
func (d *deps) App() *mid.App {
	reader := store.NewReader(d.gateway)
	branchTimeout := util.GetEnvDuration("RESUMO_BRANCH_TIMEOUT", resume.DefaultBranchTimeout)

	relevanceOpts := []relevance.ServiceOption{}
	if d.ai != nil {
		relevanceOpts = append(relevanceOpts, relevance.WithAIClient(d.ai))
	}

	var pub queue.Publisher
	if d.ch != nil {
		pub = queue.NewChannelPublisher(d.ch)
	}

	return &mid.App{
		Reader:    reader,
		Writer:    d.writer,
		Relevance: relevance.NewService(reader, relevanceOpts...),
		Topics:    topics.NewService(reader),
		Resume:    resume.NewBuilder(reader, resume.WithBranchTimeout(branchTimeout)),
		Legal:     legal.NewService(reader, branchTimeout),
		Coleta:    queue.NewTrigger(pub, d.locker, util.GetEnvDuration("COLETA_COOLDOWN", leaselock.DefaultTTL)),
		Images:    d.images,

		Key:          d.key,
		MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
	}
}

func (d *deps) Close() {
	if d.ch != nil {
		d.ch.Close()
	}
	if d.broker != nil {
		d.broker.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
}
