package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/pasty"
	"github.com/aretw0/pasty/internal/config"
	"github.com/aretw0/pasty/internal/platform"
	"github.com/aretw0/pasty/pkg/core"
)

var (
	rootDir    string
	configPath string
	userID     string
	verbose    bool
	unsafeRun  bool

	cfg    config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pasty",
	Short: "Private encrypted notes, one key per user",
	Long: `pasty keeps short text notes that only their owner can read.
Every user gets a random key on first use; notes are sealed with it before they touch disk.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		root, loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		rootDir = root

		level, _ := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

// execute runs the CLI once and renders any error. It returns the exit code.
func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		failure(errOut, describe(err))
		return 1
	}
	return 0
}

// loadConfig resolves the store root and reads its pasty.yaml.
// Precedence: --root, then --config's root, then the nearest directory holding a store.
func loadConfig() (string, config.Config, error) {
	path := configPath
	root := rootDir

	if root == "" && path == "" {
		if found, err := platform.FindRoot("."); err == nil {
			root = found
		}
	}
	if path == "" && root != "" {
		path = filepath.Join(root, platform.ConfigFileName)
	}

	loaded := config.Default()
	if path != "" {
		var err error
		loaded, err = config.Load(path)
		if err != nil {
			return "", loaded, err
		}
	}

	if root == "" {
		root = loaded.Root
		if configPath != "" && !filepath.IsAbs(root) {
			root = filepath.Join(filepath.Dir(configPath), root)
		}
	}
	return root, loaded, nil
}

// openService builds the note service for the resolved root.
func openService() (*core.Service, error) {
	return pasty.New(rootDir,
		pasty.WithAutoInit(true),
		pasty.WithNotesDir(cfg.NotesDir),
		pasty.WithKeysDir(cfg.KeysDir),
		pasty.WithDevSafety(!unsafeRun),
		pasty.WithLogger(logger),
	)
}

// currentUser resolves the acting user: --user, then $PASTY_USER, then the OS account.
func currentUser() (string, error) {
	if userID != "" {
		return userID, nil
	}
	if env := os.Getenv("PASTY_USER"); env != "" {
		return env, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("cannot determine user, pass --user: %w", err)
	}
	return u.Username, nil
}

// session opens the service and resolves the user in one step for note commands.
func session(cmd *cobra.Command) (context.Context, *core.Service, string, error) {
	uid, err := currentUser()
	if err != nil {
		return nil, nil, "", err
	}
	svc, err := openService()
	if err != nil {
		return nil, nil, "", err
	}
	return cmd.Context(), svc, uid, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Store root directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to pasty.yaml")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "Acting user (default $PASTY_USER, then the OS user)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&unsafeRun, "unsafe", false, "Use the real root even under go run")
}
