package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/report"
	"github.com/smashclub/backend/core/user"
	"github.com/smashclub/backend/storage"
)

var (
	readPasswordFunc = term.ReadPassword                // mockable
	migrateFunc      = (*storage.Repositories).Migrate // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf      *core.Config
	logger    core.Logger
	repos     *storage.Repositories
	usrSvc    *user.Service
	reportSvc *report.Service
	mailSvc   core.EmailService
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run database migrations (up, down, status, ...)")
	_, _ = fmt.Fprintln(cli.out, "  adduser -username USERNAME -email EMAIL [-name NAME] [-admin] - create or update a user")
	_, _ = fmt.Fprintln(cli.out, "  resetpassword -username USERNAME|EMAIL - reset user's password")
	_, _ = fmt.Fprintln(cli.out, "  seed [-reset] [-password PASSWORD] - fill the database with demo data")
	_, _ = fmt.Fprintln(cli.out, "  sendreport [-month MONTH] [-year YEAR] [-category CATEGORY] [-to EMAILS] - email the monthly report")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username. The password will be prompted next.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Give the user the club owner role.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedReset := seedCmd.Bool("reset", false, "Delete existing data first.")
	seedPassword := seedCmd.String("password", defaultSeedPassword, "The password of the seeded users.")

	sendReportCmd := flag.NewFlagSet("sendreport", flag.ExitOnError)
	sendReportMonth := sendReportCmd.String("month", "", "Month of the report (1-12). Defaults to the current month.")
	sendReportYear := sendReportCmd.String("year", "", "Year of the report. Defaults to the current year.")
	sendReportCategory := sendReportCmd.String("category", "", "Age category of the report. Defaults to all.")
	sendReportTo := sendReportCmd.String("to", "", "Comma separated recipients. Defaults to the club report recipients.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(ctx, args[2:])

	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(ctx, *addUserName, *addUserUname, *addUserEmail, pwd, *addUserAdmin)

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(ctx, *resetPasswordUname, pwd)

	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed(ctx, *seedReset, *seedPassword)

	case "sendreport":
		if err := sendReportCmd.Parse(args[2:]); err != nil {
			return err
		}
		var recipients []string
		for _, rcpt := range strings.Split(*sendReportTo, ",") {
			if rcpt = core.CleanString(rcpt, true /* lower */); rcpt != "" {
				recipients = append(recipients, rcpt)
			}
		}
		q := report.ParseQuery(string(report.Monthly), *sendReportMonth, *sendReportYear, *sendReportCategory)
		return cli.sendReport(ctx, q, recipients...)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	_, _ = fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	_, _ = fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
