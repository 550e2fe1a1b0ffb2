package commands

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"svault/internal/app"
	"svault/internal/crypto"
	"svault/internal/domain"
	"svault/internal/platform"
)

// Version is set at build time.
var Version = "2.0.0"

type cli struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader
	lines  *bufio.Reader

	home       string
	configPath string
	vaultPath  string
	output     string
	password   string
	verbose    bool

	// clipboard overrides the system clipboard when set.
	clipboard domain.Clipboard

	app *app.App
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	c := &cli{out: os.Stdout, errOut: os.Stderr, in: os.Stdin}
	return c.run(os.Args[1:])
}

func (c *cli) run(args []string) int {
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := root.ExecuteContext(ctx)
	if c.app != nil {
		if cerr := c.app.Close(context.Background()); err == nil {
			err = cerr
		}
	}
	if err != nil {
		printError(c.errOut, err)
		return exitCode(err)
	}
	return ExitSuccess
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "svault",
		Short:         "Local encrypted credential vault",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return c.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.home, "home", "", "config dir (default ~/.svault)")
	pf.StringVar(&c.configPath, "config", "", "config file (default <home>/config.yaml)")
	pf.StringVar(&c.vaultPath, "vault", "", "vault file (default from config)")
	pf.StringVarP(&c.output, "output", "o", "table", "output format: table, json, yaml")
	pf.StringVarP(&c.password, "password", "p", "", "master password (prompted when omitted)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		c.createCmd(),
		c.infoCmd(),
		c.listCmd(),
		c.addCmd(),
		c.showCmd(),
		c.editCmd(),
		c.rmCmd(),
		c.categoryCmd(),
		c.generateCmd(),
		c.copyCmd(),
		c.passwdCmd(),
	)
	return root
}

func (c *cli) setup() error {
	switch c.output {
	case "table", "json", "yaml":
	default:
		return domain.Errorf(domain.KindValidation, "output", "unknown format %q", c.output)
	}

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: level}))

	if err := platform.DisableCoreDumps(); err != nil {
		logger.Debug("core dumps not disabled", "err", err)
	}

	home := c.home
	if home == "" {
		home = app.DefaultHome()
	}
	cfg, err := app.LoadConfig(home, c.configPath)
	if err != nil {
		return err
	}
	cfg.Logger = logger
	if c.clipboard != nil {
		cfg.Clipboard = c.clipboard
	}
	c.app, err = app.New(cfg)
	return err
}

func (c *cli) vaultFile() string {
	if c.vaultPath != "" {
		return c.vaultPath
	}
	return c.app.Config().DefaultVault
}

// open unlocks the vault for the running command.
func (c *cli) open(cmd *cobra.Command) error {
	pw, err := c.masterPassword("Master password: ")
	if err != nil {
		return err
	}
	defer crypto.Wipe(pw)
	return c.app.Open(cmd.Context(), c.vaultFile(), pw)
}

func (c *cli) masterPassword(prompt string) ([]byte, error) {
	if c.password != "" {
		return []byte(c.password), nil
	}
	return c.readSecret(prompt)
}
