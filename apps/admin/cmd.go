package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf     *core.Config
	db       *sql.DB
	usrRepo  user.Repository
	usrSvc   user.Service
	notifier core.Notifier
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -email EMAIL -name NAME [-role student|teacher|parent] - add a user. The password will be prompted next")
	fmt.Println("  seeddemo - load the demo accounts into the user records")
	fmt.Println("  testwebhook [-url URL] - send a test event to the automation endpoint")
	fmt.Println("  migrate up|down|status [ARGS...] - run database migrations")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserName := addUserCmd.String("name", "", "The user's display name.")
	addUserRole := addUserCmd.String("role", user.RoleStudent, "The user's role: student, teacher or parent.")

	testWebhookCmd := flag.NewFlagSet("testwebhook", flag.ExitOnError)
	testWebhookURL := testWebhookCmd.String("url", "", "The endpoint to test; defaults to the configured one.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" || *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserEmail, *addUserName, *addUserRole, string(pwd))
	case "seeddemo":
		return cli.seedDemo()
	case "testwebhook":
		if err := testWebhookCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.testWebhook(*testWebhookURL)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
