package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type migrateFunc func(ctx context.Context, command string, args ...string) error

type commandLine struct {
	users   user.UserService
	migrate migrateFunc
	out     io.Writer
}

func (cli *commandLine) stdout() io.Writer {
	if cli.out == nil {
		return os.Stdout
	}
	return cli.out
}

func (cli *commandLine) printUsage() {
	w := cli.stdout()
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  migrate COMMAND [ARGS] - run a goose command (up, down, status, redo, version, ...)")
	fmt.Fprintln(w, "  adduser -username U -email E -role admin|manager|employee [-first F -last L] - create a user")
	fmt.Fprintln(w, "  resetpassword -username USERNAME|EMAIL - reset a user's password")
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.stdout(), "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.stdout())
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserRole := addUserCmd.String("role", string(user.RoleEmployee), "One of admin, manager, employee.")
	addUserFirst := addUserCmd.String("first", "", "The user's first name.")
	addUserLast := addUserCmd.String("last", "", "The user's last name.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.runMigrate(ctx, args[2], args[3:]...)

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
		return cli.addUser(ctx, user.CreateUserRequest{
			Username:  *addUserUname,
			FirstName: *addUserFirst,
			LastName:  *addUserLast,
			Email:     *addUserEmail,
			Password:  pwd,
			Role:      *addUserRole,
		})

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

	default:
		cli.printUsage()
		return errHelp
	}
}
