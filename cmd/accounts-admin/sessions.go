package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	redisstore "github.com/target/mmk-accounts-ui/internal/adapters/redis"
)

const redisCommandTimeout = 2 * time.Minute

type clearSessionsOptions struct {
	DryRun bool
	Yes    bool
}

func parseClearSessionsFlags(args []string) (clearSessionsOptions, error) {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts clearSessionsOptions
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Count slots without deleting them")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return clearSessionsOptions{}, err
	}
	return opts, nil
}

func (c *commandContext) slotStore() (*redisstore.TokenStore, error) {
	client, err := c.redisClient()
	if err != nil {
		return nil, err
	}
	return redisstore.NewTokenStoreWithPrefix(client, c.Config.Session.KeyPrefix), nil
}

func runListSessions(cmdCtx *commandContext, _ []string) error {
	store, err := cmdCtx.slotStore()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, redisCommandTimeout)
	defer cancel()

	slots, err := store.List(ctx)
	if err != nil {
		return err
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Key < slots[j].Key })

	if err := writef(cmdCtx.Out, "\nSession token slots (prefix %q)\n", cmdCtx.Config.Session.KeyPrefix); err != nil {
		return err
	}
	if len(slots) == 0 {
		return writeln(cmdCtx.Out, "  none")
	}
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 0, 2, ' ', 0)
	if err := writef(tw, "KEY\tTTL\n"); err != nil {
		return err
	}
	for _, slot := range slots {
		if err := writef(tw, "%s\t%s\n", slot.Key, renderTTL(slot.TTL)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "\nTotal: %d\n", len(slots))
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearSessionsFlags(args)
	if err != nil {
		return err
	}
	store, err := cmdCtx.slotStore()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, redisCommandTimeout)
	defer cancel()

	if opts.DryRun {
		slots, listErr := store.List(ctx)
		if listErr != nil {
			return listErr
		}
		return writef(cmdCtx.Out, "Dry run: would delete %d session slot(s)\n", len(slots))
	}

	if !opts.Yes {
		question := "Every signed-in browser will be logged out. Continue?"
		if confirmErr := confirm(bufio.NewReader(cmdCtx.In), cmdCtx.Out, question); confirmErr != nil {
			return confirmErr
		}
	}

	removed, err := store.Purge(ctx)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Info("clear sessions complete", "slots_deleted", removed)
	return writef(cmdCtx.Out, "Deleted %d session slot(s)\n", removed)
}

// renderTTL formats Redis TTL replies. go-redis reports -1 for "no expiry"
// and -2 for a key that vanished between SCAN and TTL.
func renderTTL(d time.Duration) string {
	switch d {
	case -1, -1 * time.Second:
		return "no expiry"
	case -2, -2 * time.Second:
		return "key missing"
	default:
		return d.Round(time.Second).String()
	}
}
