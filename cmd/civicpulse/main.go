// Command civicpulse is a terminal client for CivicPulse. It talks to the
// REST API when reachable and keeps working against local state otherwise.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"civicpulse/internal/client"
	"civicpulse/internal/logger"
	"civicpulse/internal/store"
)

// app is the state shared by every subcommand for one invocation.
type app struct {
	out io.Writer

	configPath string
	apiURL     string
	statePath  string
	offline    bool

	cfg     *Config
	api     *client.Client
	store   *store.Store
	closers []func() error
}

func (a *app) open(ctx context.Context) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.statePath != "" {
		cfg.StatePath = a.statePath
		cfg.Redis.Addr = ""
	}
	if a.offline {
		cfg.Offline = true
	}
	a.cfg = cfg

	logger.Init(cfg.LogEnv)

	kv, err := a.openKV(ctx)
	if err != nil {
		return err
	}

	var remote store.Remote
	if !cfg.Offline && cfg.APIURL != "" {
		a.api = client.NewClient(cfg.APIURL, &http.Client{Timeout: cfg.Timeout})
		remote = a.api
	}

	a.store, err = store.Open(ctx, kv, remote, store.Options{Log: logger.Named("store")})
	return err
}

func (a *app) openKV(ctx context.Context) (store.KV, error) {
	if a.cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", a.cfg.Redis.Addr, err)
		}
		return store.NewRedisKV(rdb, a.cfg.Redis.Prefix), nil
	}

	if err := os.MkdirAll(filepath.Dir(a.cfg.StatePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	kv, err := store.OpenSQLiteKV(a.cfg.StatePath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, kv.Close)
	return kv, nil
}

// online returns the API client, or an error when running offline.
func (a *app) online() (*client.Client, error) {
	if a.api == nil {
		return nil, errOffline
	}
	return a.api, nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	logger.Sync()
	return errors.Join(errs...)
}

var errOffline = errors.New("this command needs the backend; unset --offline and check api_url")

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "civicpulse",
		Short: "File and track municipal grievances",
		Long: `civicpulse files, tracks and resolves municipal grievances.

Every command talks to the CivicPulse API when it can be reached and falls
back to local state when it cannot. Local state lives in a sqlite file, or
in redis when redis.addr is configured.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default: "+DefaultConfigPath()+")")
	flags.StringVar(&a.apiURL, "api", "", "API base URL (overrides api_url)")
	flags.StringVar(&a.statePath, "state", "", "Local state file (overrides state and redis)")
	flags.BoolVar(&a.offline, "offline", false, "Never contact the backend")

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newUsersCmd(a),
		newSubmitCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newUpdateCmd(a),
		newFeedbackCmd(a),
		newUploadCmd(a),
		newRefreshCmd(a),
		newAnalyticsCmd(a),
		newSuggestCmd(a),
	)
	return root
}

// run executes one invocation with args and writes results to out.
func run(ctx context.Context, args []string, out io.Writer) error {
	a := &app{out: out}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
