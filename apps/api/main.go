package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/jmog/academy/apps/api/echo"
	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/chat"
	"github.com/jmog/academy/core/session"
	"github.com/jmog/academy/core/subject"
	"github.com/jmog/academy/core/user"
	emailsvc "github.com/jmog/academy/services/email"
	logsvc "github.com/jmog/academy/services/logger"
	notifysvc "github.com/jmog/academy/services/notifier"
	"github.com/jmog/academy/storage/catalog"
	"github.com/jmog/academy/storage/database"
	inmemdb "github.com/jmog/academy/storage/database/inmem"
	sqlxrepos "github.com/jmog/academy/storage/database/sqlx"
	"github.com/jmog/academy/storage/sessionstore"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up email & notification services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	notifier := notifysvc.NewWebhookNotifier(conf, logger)

	// set up user records: Postgres when configured, in-memory demo otherwise
	var usrRepo user.Repository
	if conf.Database.User != "" {
		db, err := setUpDB(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				dbLogger.Fatal("Failed to close", err)
			}
		}()
		usrRepo = sqlxrepos.NewUserRepository(db)
	} else {
		memDB, err := inmemdb.Open()
		if err != nil {
			logger.Fatal(fmt.Sprintf("opening in-memory database: %v", err), err)
		}
		usrRepo = inmemdb.NewUserRepository(memDB)
	}
	if err := user.SeedDemo(usrRepo); err != nil {
		logger.Fatal(fmt.Sprintf("seeding demo users: %v", err), err)
	}
	usrSvc := user.NewService(usrRepo, mailSvc, conf, logger)

	// set up session persistence: Redis when configured, a local file otherwise
	var storage session.Storage
	if conf.Redis.Address != "" {
		storage = sessionstore.NewRedisStorage(conf)
	} else {
		storage = sessionstore.NewFileStorage(conf)
	}
	sessionStore := session.NewStore(session.Deps{
		Conf:     conf,
		Logger:   logger,
		Notifier: notifier,
		Storage:  storage,
		Users:    usrSvc,
	})

	// set up catalog & chat
	catalogRepo, err := catalog.NewRepository()
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading subject catalog: %v", err), err)
	}
	subjectSvc := subject.NewService(catalogRepo)
	chatSvc := chat.NewService(conf, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			Session:    sessionStore,
			UserSvc:    usrSvc,
			SubjectSvc: subjectSvc,
			ChatSvc:    chatSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
