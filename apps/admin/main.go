package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/user"
	emailsvc "github.com/jmog/academy/services/email"
	logsvc "github.com/jmog/academy/services/logger"
	notifysvc "github.com/jmog/academy/services/notifier"
	"github.com/jmog/academy/storage/database"
	inmemdb "github.com/jmog/academy/storage/database/inmem"
	sqlxrepos "github.com/jmog/academy/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	appLogger := logsvc.NewRollbarLogger(logger, conf)
	appLogger.Enable(!conf.Debug)

	// set up user records: Postgres when configured, in-memory otherwise
	var db *sql.DB
	var usrRepo user.Repository
	if conf.Database.User != "" {
		var err error
		db, err = database.Open(conf)
		errAndDie(err)
		defer func() { _ = db.Close() }()
		usrRepo = sqlxrepos.NewUserRepository(db)
	} else {
		memDB, err := inmemdb.Open()
		errAndDie(err)
		usrRepo = inmemdb.NewUserRepository(memDB)
	}

	// start CLI
	cli := commandLine{
		conf:     conf,
		db:       db,
		usrRepo:  usrRepo,
		usrSvc:   user.NewService(usrRepo, emailsvc.NewConsoleService(conf), conf, appLogger),
		notifier: notifysvc.NewWebhookNotifier(conf, appLogger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
