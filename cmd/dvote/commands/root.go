package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dvotenative/internal/app"
	"dvotenative/internal/boundary"
)

var (
	configPath string
	home       string
	logLevel   string
	passphrase string
	appCtx     *app.Wire
)

var errFailed = errors.New("operation failed")

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dvote",
		Short:         "Vocdoni native crypto toolkit",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.Bootstrap(configPath, func(c *app.Config) {
				if home != "" {
					c.Home = home
				}
				if logLevel != "" {
					c.LogLevel = logLevel
				}
			})
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			return appCtx.Close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file")
	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.dvote)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase (prompted when omitted)")

	root.AddCommand(
		addressCmd(), pubkeyCmd(), privkeyCmd(), mnemonicCmd(), digestCmd(),
		signCmd(), verifyCmd(), recoverCmd(), encryptCmd(), decryptCmd(),
		proveCmd(), walletCmd(), configCmd(),
	)
	return root
}

// withScope runs f with the bridge and a scope that is closed afterwards.
func withScope(f func(b *boundary.Bridge, sc *boundary.Scope) error) (err error) {
	b := appCtx.Bridge
	b.ClearError()
	sc := b.Allocator().Scope()
	defer func() { err = errors.Join(err, sc.Close()) }()
	return f(b, sc)
}

// text reads the result behind h, turning the zero handle into the bridge's
// last error.
func text(sc *boundary.Scope, h boundary.Handle) (string, error) {
	s, ok := sc.Text(h)
	if !ok {
		return "", lastError()
	}
	return s, nil
}

func lastError() error {
	if err := appCtx.Bridge.LastError(); err != nil {
		return err
	}
	return errFailed
}

// printResult runs op in a scope and prints its text to the command output.
func printResult(cmd *cobra.Command, op func(b *boundary.Bridge) boundary.Handle) error {
	return withScope(func(b *boundary.Bridge, sc *boundary.Scope) error {
		out, err := text(sc, op(b))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	})
}
