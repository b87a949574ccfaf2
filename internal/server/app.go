// Package server wires the resumekeeper components from configuration and
// runs the HTTP API, plus the optional gRPC health endpoint, until the
// process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/resumekeeper/internal/dbx"
	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/dmitrijs2005/resumekeeper/internal/server/auth"
	"github.com/dmitrijs2005/resumekeeper/internal/server/config"
	"github.com/dmitrijs2005/resumekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/resumekeeper/internal/server/notify"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/resumekeeper/internal/server/services"
	"github.com/dmitrijs2005/resumekeeper/internal/server/storage"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/resumekeeper/internal/server/grpc"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	engine   *gin.Engine
	accounts *services.AuthService
}

// NewApp builds every component described by c. With an empty DSN the
// in-memory stores are used; otherwise the PostgreSQL schema is migrated
// before the app is returned.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, err
	}

	db, tx, rm, err := openStore(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	blobs, err := openBlobStore(ctx, c)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	notifier := newNotifier(ctx, c, logger)

	codec := auth.NewTokenCodec([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	hasher := auth.NewBcryptHasher(c.BcryptCost)

	as := services.NewAuthService(tx, rm, codec, hasher, notifier, c.OTPValidityDuration, logger)
	ss := services.NewStudentService(tx, rm, logger)
	rs := services.NewResumeService(tx, rm, blobs, logger)

	engine := httpapi.NewRouter(httpapi.Deps{
		Auth:           as,
		Students:       ss,
		Resumes:        rs,
		Codec:          codec,
		Accounts:       rm.Accounts(tx.Conn()),
		Logger:         logger,
		MaxUploadBytes: c.MaxUploadBytes,
	})

	return &App{config: c, logger: logger, db: db, engine: engine, accounts: as}, nil
}

func openStore(ctx context.Context, c *config.Config, l logging.Logger) (*sql.DB, dbx.Transactor, repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		l.Warn(ctx, "database DSN not configured, using in-memory stores")
		return nil, dbx.NoTx{}, repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		closeDB(db)
		return nil, nil, nil, err
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, nil, nil, err
	}
	return db, dbx.NewSQLTransactor(db), rm, nil
}

func openBlobStore(ctx context.Context, c *config.Config) (storage.BlobStore, error) {
	if c.StorageBackend == config.StorageS3 {
		return storage.NewS3Store(ctx, storage.S3Config{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	}
	return storage.NewLocalStore(c.LocalStorageDir)
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

// AuthService exposes the account service to maintenance commands.
func (app *App) AuthService() *services.AuthService {
	return app.accounts
}

// Close releases the database handle.
func (app *App) Close() {
	closeDB(app.db)
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled, a termination signal arrives or one of
// the servers fails. The first server error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() { firstErr = err })
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.engine, app.logger)
		if err := s.Run(ctx); err != nil {
			fail(fmt.Errorf("http server: %w", err))
		}
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger)
			if err := s.Run(ctx); err != nil {
				fail(fmt.Errorf("grpc server: %w", err))
			}
		}()
	}

	wg.Wait()
	app.Close()
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")

	return firstErr
}

// newNotifier picks the OTP delivery path. Writing codes to the log needs
// an explicit opt-in; without it and without a relay, signups fail.
func newNotifier(ctx context.Context, c *config.Config, logger logging.Logger) notify.Notifier {
	switch {
	case c.SMTPHost != "":
		return notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			User:     c.SMTPUser,
			Password: c.SMTPPassword,
			From:     c.MailFrom,
			Timeout:  c.SMTPTimeout,
		})
	case c.DevLogOTP:
		logger.Warn(ctx, "SMTP host not configured, dev OTP logging is on: signup codes are written to the log")
		return notify.NewLogNotifier(logger)
	default:
		logger.Warn(ctx, "SMTP host not configured, signups will fail until a relay is set")
		return notify.DisabledNotifier{}
	}
}
