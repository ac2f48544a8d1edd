// Package cli implements the vfs command.
package cli

import (
	"log/slog"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/resolve"
)

// options holds the persistent flag values.
type options struct {
	configPath string
	envFile    string
	logLevel   string
	root       string
	latency    time.Duration
	seed       uint64
	json       bool
}

// app is the state shared by every subcommand.
type app struct {
	opts     options
	logger   *slog.Logger
	resolver *resolve.Resolver
}

// NewRootCommand builds the vfs command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "vfs",
		Short: "Inspect and manipulate files on local, in-memory, S3 and HDFS filesystems",
		Long: `vfs runs filesystem operations against any location the resolver
understands. Arguments are URIs (file:///tmp/x, s3://bucket/key,
mock:///a, hdfs://namenode/path) or absolute local paths.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error
  3  - Panic or unexpected system error
  4  - Path not found
  5  - Invalid input
  6  - Operation or backend not implemented
  10 - Invalid configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.opts.envFile, "env-file", "", "load environment variables from this file (default: .env when present)")
	flags.StringVar(&a.opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&a.opts.root, "root", "", "confine every operation to this directory")
	flags.DurationVar(&a.opts.latency, "latency", 0, "average latency injected before each operation")
	flags.Uint64Var(&a.opts.seed, "seed", 0, "seed for injected latencies (0 picks a random seed)")
	flags.BoolVar(&a.opts.json, "json", false, "print listings and errors as JSON")

	cmd.AddCommand(
		newLsCommand(a),
		newStatCommand(a),
		newCatCommand(a),
		newPutCommand(a),
		newMkdirCommand(a),
		newRmCommand(a),
		newRmdirCommand(a),
		newMvCommand(a),
		newCpCommand(a),
	)
	return cmd
}

// Execute runs the vfs command and returns its exit code.
func Execute() int {
	cmd := NewRootCommand()
	err := cmd.Execute()
	if err != nil {
		asJSON, _ := cmd.PersistentFlags().GetBool("json")
		printError(cmd.ErrOrStderr(), err, asJSON)
	}
	return ExitCodeForError(err)
}

// setup loads the environment and configuration, then builds the logger
// and resolver.
func (a *app) setup(cmd *cobra.Command) error {
	if a.opts.envFile != "" {
		if err := godotenv.Load(a.opts.envFile); err != nil {
			return errors.Wrapf(err, errors.CodeInvalidConfig, "failed to load env file %s", a.opts.envFile)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if a.opts.configPath != "" {
		loaded, err := LoadConfig(a.opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := a.merge(cmd, cfg); err != nil {
		return err
	}

	logger, err := newLogger(a.opts.logLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	a.resolver = resolve.New(
		resolve.WithLogger(logger),
		resolve.WithS3Defaults(cfg.S3),
	)
	return nil
}

// merge applies configuration values for flags not set on the command
// line.
func (a *app) merge(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()

	if !flags.Changed("log-level") && cfg.LogLevel != "" {
		a.opts.logLevel = cfg.LogLevel
	}
	if !flags.Changed("root") && cfg.Root != "" {
		a.opts.root = cfg.Root
	}
	if !flags.Changed("seed") && cfg.Seed != 0 {
		a.opts.seed = cfg.Seed
	}
	if !flags.Changed("latency") {
		latency, err := cfg.latency()
		if err != nil {
			return err
		}
		if latency > 0 {
			a.opts.latency = latency
		}
	}
	if a.opts.latency < 0 {
		return errors.Newf(errors.CodeInvalidInput, "latency must not be negative, got %s", a.opts.latency)
	}
	return nil
}

// open resolves uri and applies the --root and --latency decorations.
func (a *app) open(uri string) (core.FileSystem, string, error) {
	fsys, p, err := a.resolver.FromURIOrPath(uri)
	if err != nil {
		return nil, "", err
	}
	fsys, err = resolve.Wrap(fsys, a.opts.root, a.opts.latency, a.opts.seed)
	if err != nil {
		return nil, "", err
	}
	p = a.rooted(p)
	a.logger.Debug("opened filesystem", "uri", uri, "type", fsys.Type().String(), "path", p)
	return fsys, p, nil
}

// openMany resolves uris that must address a single filesystem and returns
// the filesystem with the path of each URI.
func (a *app) openMany(uris []string) (core.FileSystem, []string, error) {
	fsys, first, err := a.open(uris[0])
	if err != nil {
		return nil, nil, err
	}

	paths := []string{first}
	for _, uri := range uris[1:] {
		if !sameFileSystem(uris[0], uri) {
			return nil, nil, errors.Newf(errors.CodeInvalidInput,
				"'%s' and '%s' do not address the same filesystem", uris[0], uri)
		}
		_, p, err := a.resolver.FromURIOrPath(uri)
		if err != nil {
			return nil, nil, err
		}
		paths = append(paths, a.rooted(p))
	}
	return fsys, paths, nil
}

// rooted makes p relative to --root when one is set.
func (a *app) rooted(p string) string {
	if a.opts.root == "" {
		return p
	}
	return strings.TrimLeft(p, "/")
}

// sameFileSystem reports whether two arguments resolve to the same
// underlying storage, so one filesystem instance can serve both. Mock
// URIs never do: every resolution creates a fresh in-memory filesystem.
func sameFileSystem(a, b string) bool {
	ua, okA := location(a)
	ub, okB := location(b)
	if !okA || !okB || ua.Scheme != ub.Scheme {
		return false
	}

	switch ua.Scheme {
	case "file":
		return true
	case "s3":
		return ua.User.String() == ub.User.String() && ua.RawQuery == ub.RawQuery
	case "hdfs", "viewfs":
		return ua.Host == ub.Host && ua.User.String() == ub.User.String() && ua.RawQuery == ub.RawQuery
	default:
		return false
	}
}

// location parses an argument, treating absolute local paths as file URIs.
func location(arg string) (*url.URL, bool) {
	if isLocalPath(arg) {
		return &url.URL{Scheme: "file", Path: arg}, true
	}
	u, err := url.Parse(arg)
	if err != nil {
		return nil, false
	}
	return u, true
}

// isLocalPath mirrors the resolver: drive letters and backslash roots only
// count on Windows.
func isLocalPath(arg string) bool {
	if strings.HasPrefix(arg, "/") {
		return true
	}
	if runtime.GOOS != "windows" {
		return false
	}
	if strings.HasPrefix(arg, `\\`) {
		return true
	}
	return len(arg) >= 3 && arg[1] == ':' && (arg[2] == '\\' || arg[2] == '/')
}
