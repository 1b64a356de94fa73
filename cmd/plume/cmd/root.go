package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plume/internal/config"
	"plume/internal/log"
)

var (
	cfgFile   string
	envFile   string
	logLevel  string
	logFormat string

	cfg    config.Config
	logger = log.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "plume",
	Short: "plume - lexer, validator and expression parser",
	Long: `plume is the front-end for a small imperative language.

Commands:
  tokens    Print the token stream of a source
  check     Validate a program with the recursive-descent parser
  expr      Parse an expression with the Pratt parser
  repl      Interactive prompt over the three front-ends
  serve     Run the websocket playground
  hash-key  Hash a playground access key`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file (default: ./"+config.DefaultEnvFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "text or json")
}

// loadConfig layers flag overrides on top of the loaded config.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(config.Options{
		File:      cfgFile,
		EnvFile:   envFile,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	})
	if err != nil {
		return err
	}
	logger = cfg.Logger().WithField("command", cmd.Name())
	return nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("error:"), err)
}
