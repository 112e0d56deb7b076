package main

import (
	"context"
	"log"
	"os"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/core/performance"
	"github.com/smashclub/backend/core/report"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/core/settings"
	"github.com/smashclub/backend/core/user"
	emailsvc "github.com/smashclub/backend/services/email"
	logsvc "github.com/smashclub/backend/services/logger"
	"github.com/smashclub/backend/storage"
)

func main() {
	conf := core.NewConfig()

	zl, err := logsvc.NewZap(conf)
	if err != nil {
		log.Fatalf("admin: creating logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	logger := logsvc.NewRollbarLogger(zl.Named("ADMIN"), conf)
	core.ParseEmailTemplates(conf, logger)

	// set up DB
	ctx := context.Background()
	repos, err := storage.Open(ctx, conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer func() { _ = repos.Close(ctx) }()

	// services
	mailSvc := emailsvc.New(conf, logger)
	athSvc := athlete.NewService(repos.Athletes)
	schedSvc := schedule.NewService(repos.Schedules, conf)
	reportSvc, err := report.NewService(
		athSvc,
		attendance.NewService(repos.Attendance, schedSvc),
		performance.NewService(repos.Performance, conf),
		schedSvc,
		settings.NewService(repos.Settings, conf),
		mailSvc,
		conf,
	)
	if err != nil {
		logger.Fatal("creating report service", err)
	}

	// start CLI
	cli := commandLine{
		conf:      conf,
		logger:    logger,
		repos:     repos,
		usrSvc:    user.NewService(repos.Users, mailSvc, conf),
		reportSvc: reportSvc,
		mailSvc:   mailSvc,
		out:       os.Stdout,
	}
	if err = cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin: "+err.Error(), err)
		}
		_ = zl.Sync()
		os.Exit(1)
	}
}
