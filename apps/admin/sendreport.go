package main

import (
	"context"
	"fmt"

	"github.com/smashclub/backend/core/report"
	emailsvc "github.com/smashclub/backend/services/email"
)

func (cli *commandLine) sendReport(ctx context.Context, q report.Query, recipients ...string) error {
	res, err := cli.reportSvc.SendMonthly(ctx, q, recipients...)
	if err != nil {
		return err
	}
	emailsvc.Wait(cli.mailSvc)
	cli.logger.Info(fmt.Sprintf("report %s sent: %d athletes, %d sessions", report.Title(res), len(res.Report), res.TotalSessions))
	return nil
}
