// Package cli implémente adminctl, le client en ligne de commande de l'API
// d'administration
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"dating-admin/internal/logutils"
	"dating-admin/pkg/adminclient"

	"github.com/spf13/cobra"
)

// errReported signale une erreur déjà affichée à l'opérateur
var errReported = errors.New("already reported")

type app struct {
	cfgFile string
	apiURL  string
	token   string
	noColor bool
	verbose bool

	cfg     *Config
	printer *Printer
	client  *adminclient.Client
}

func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "adminctl",
		Short: "Dating platform administration CLI",
		Long: `adminctl drives the dating platform admin API.

Example usage:
  adminctl login --email ops@example.com
  adminctl users list --status banned --sort createdAt
  adminctl users verify <id> <id>
  adminctl reports status resolved <id> --note "handled"
  adminctl browse users`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .adminctl.yaml)")
	flags.StringVar(&a.apiURL, "api-url", "", "admin API base URL")
	flags.StringVar(&a.token, "token", "", "bearer token")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colors")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		a.loginCmd(),
		a.statsCmd(),
		a.usersCmd(),
		a.blindatesCmd(),
		a.matchesCmd(),
		reportsCmd(a, adminclient.Reports, reportTable, "Manage member reports"),
		reportsCmd(a, adminclient.SafetyReports, safetyTable, "Manage blind date safety reports"),
		a.notificationsCmd(),
		a.browseCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	logutils.SetLevel(level)
	logutils.Log.SetOutput(cmd.ErrOrStderr())

	a.printer = NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), ResolveColors(cfg.Output.Colors, a.noColor))
	a.client = adminclient.New(adminclient.Config{
		BaseURL: cfg.API.URL,
		Token:   cfg.API.Token,
		Timeout: cfg.API.Timeout,
	})

	logutils.Log.Debugf("adminctl: config %s, api %s", cfg.Path(), cfg.API.URL)
	return nil
}

// Execute lance adminctl et retourne le code de sortie
func Execute(ctx context.Context) int {
	root := NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			NewPrinter(os.Stdout, os.Stderr, ResolveColors(true, false)).Error("%s", adminclient.ErrorMessage(err))
		}
		return 1
	}
	return 0
}
