package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/target/mmk-accounts-ui/internal/adapters/filestore"
	"github.com/target/mmk-accounts-ui/internal/domain/account"
	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
	"github.com/target/mmk-accounts-ui/internal/service"
)

// cliSessionKey is the token file slot the CLI signs in under.
const cliSessionKey = "cli"

const apiCommandTimeout = 30 * time.Second

var errNotSignedIn = errors.New("not signed in; run `accounts-admin login` first")

type loginOptions struct {
	Email         string
	PasswordStdin bool
}

func parseLoginFlags(args []string) (loginOptions, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts loginOptions
	fs.StringVar(&opts.Email, "email", "", "Account email (prompted when empty)")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "Read the password from stdin instead of the terminal")

	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}
	return opts, nil
}

func (c *commandContext) sessions() (*service.SessionService, error) {
	api, err := c.accountAPI()
	if err != nil {
		return nil, err
	}
	return service.NewSessionService(service.SessionServiceOptions{
		API:        api,
		Tokens:     filestore.NewTokenStore(c.TokenFile),
		DefaultTTL: c.Config.Session.TTL,
		Logger:     c.Logger,
	}), nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args)
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmdCtx.In)
	email := opts.Email
	if email == "" {
		if email, err = readLine(in, cmdCtx.Out, "Email: "); err != nil {
			return err
		}
	}
	var password string
	if opts.PasswordStdin {
		password, err = readLine(in, cmdCtx.Out, "")
	} else {
		password, err = promptPassword(cmdCtx.Out)
	}
	if err != nil {
		return err
	}
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}

	svc, err := cmdCtx.sessions()
	if err != nil {
		return err
	}
	ctx, cancel := cmdCtxTimeout(cmdCtx)
	defer cancel()

	sess := svc.Open(ctx, cliSessionKey)
	if loginErr := sess.Login(ctx, email, password); loginErr != nil {
		return fmt.Errorf("login failed: %s", apperrors.UserMessage(loginErr, loginErr.Error()))
	}
	user := sess.User()
	if user == nil {
		return errors.New("login succeeded but the profile could not be loaded")
	}
	return writef(cmdCtx.Out, "Signed in as %s <%s> (%s)\n", user.Name, user.Email, user.Role())
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	svc, err := cmdCtx.sessions()
	if err != nil {
		return err
	}
	ctx, cancel := cmdCtxTimeout(cmdCtx)
	defer cancel()

	sess := svc.Open(ctx, cliSessionKey)
	if err := sess.Logout(ctx); err != nil {
		return err
	}
	return writeln(cmdCtx.Out, "Signed out")
}

func runWhoami(cmdCtx *commandContext, _ []string) error {
	sess, err := openSignedIn(cmdCtx)
	if err != nil {
		return err
	}

	return printProfile(cmdCtx, *sess.User())
}

func runUsers(cmdCtx *commandContext, _ []string) error {
	sess, err := openSignedIn(cmdCtx)
	if err != nil {
		return err
	}

	ctx, listCancel := cmdCtxTimeout(cmdCtx)
	defer listCancel()
	users, err := sess.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %s", apperrors.UserMessage(err, err.Error()))
	}
	return printUsers(cmdCtx, users)
}

// openSignedIn restores the CLI session and fails unless a user is loaded.
func openSignedIn(cmdCtx *commandContext) (*service.Session, error) {
	svc, err := cmdCtx.sessions()
	if err != nil {
		return nil, err
	}
	ctx, cancel := cmdCtxTimeout(cmdCtx)
	defer cancel()
	sess := svc.Open(ctx, cliSessionKey)
	if !sess.Authenticated() {
		return nil, errNotSignedIn
	}
	return sess, nil
}

func cmdCtxTimeout(cmdCtx *commandContext) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmdCtx.Ctx, apiCommandTimeout)
}

func printProfile(cmdCtx *commandContext, p account.Profile) error {
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Date of birth", p.DateOfBirth},
		{"Mobile", p.MobileNumber},
		{"Role", string(p.Role())},
	}
	for _, row := range rows {
		if err := writef(tw, "%s:\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printUsers(cmdCtx *commandContext, users []account.Profile) error {
	if len(users) == 0 {
		return writeln(cmdCtx.Out, "No registered users.")
	}
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\tEMAIL\tDOB\tMOBILE\tROLE\n"); err != nil {
		return err
	}
	for _, u := range users {
		if err := writef(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Name, u.Email, u.DateOfBirth, u.MobileNumber, u.Role()); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "\n%d user(s)\n", len(users))
}
