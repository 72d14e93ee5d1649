package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/target/mmk-accounts-ui/config"
	"github.com/target/mmk-accounts-ui/internal/adapters/filestore"
	"github.com/target/mmk-accounts-ui/internal/bootstrap"
	"github.com/target/mmk-accounts-ui/internal/ports"
)

// tokenFileEnv overrides where the CLI keeps its login.
const tokenFileEnv = "ACCOUNTS_ADMIN_TOKEN_FILE"

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

// commandContext carries what every command needs. API and Redis are opened
// lazily so commands that do not use them never dial anything.
type commandContext struct {
	Ctx       context.Context
	Logger    *slog.Logger
	Config    config.AppConfig
	TokenFile string
	In        io.Reader
	Out       io.Writer

	API   ports.AccountAPI
	Redis redis.UniversalClient
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	tokenFile, err := resolveTokenFile()
	if err != nil {
		logger.ErrorContext(context.Background(), "resolve token file", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI cannot run without a token file location
	}

	cmdCtx := &commandContext{
		Ctx:       context.Background(),
		Logger:    logger,
		Config:    cfg,
		TokenFile: tokenFile,
		In:        os.Stdin,
		Out:       os.Stdout,
	}
	runErr := cmd.run(cmdCtx, os.Args[2:])
	cmdCtx.close()
	if runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Sign in to the accounts API and remember the token",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Forget the stored token",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the signed-in account",
			run:         runWhoami,
		},
		"users": {
			name:        "users",
			description: "List registered accounts (admin only)",
			run:         runUsers,
		},
		"list-sessions": {
			name:        "list-sessions",
			description: "Inspect browser session token slots in Redis",
			run:         runListSessions,
		},
		"clear-sessions": {
			name:        "clear-sessions",
			description: "Delete every browser session token slot from Redis",
			run:         runClearSessions,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: accounts-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-16s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func resolveTokenFile() (string, error) {
	if p := strings.TrimSpace(os.Getenv(tokenFileEnv)); p != "" {
		return p, nil
	}
	return filestore.DefaultPath()
}

//nolint:ireturn // the implementation is picked by API_MODE.
func (c *commandContext) accountAPI() (ports.AccountAPI, error) {
	if c.API != nil {
		return c.API, nil
	}
	api, err := bootstrap.NewAccountAPI(&c.Config, c.Logger)
	if err != nil {
		return nil, err
	}
	c.API = api
	return api, nil
}

//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func (c *commandContext) redisClient() (redis.UniversalClient, error) {
	if c.Redis != nil {
		return c.Redis, nil
	}
	if !c.Config.UsesRedis() {
		return nil, errors.New("redis not configured: SESSION_BACKEND is not redis")
	}
	client, err := bootstrap.ConnectRedis(c.Ctx, c.Config.Redis, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Redis = client
	return client, nil
}

func (c *commandContext) close() {
	if c.Redis == nil {
		return
	}
	if err := c.Redis.Close(); err != nil {
		c.Logger.Warn("redis close failed", "error", err)
	}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func write(w io.Writer, args ...any) error {
	_, err := fmt.Fprint(w, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
