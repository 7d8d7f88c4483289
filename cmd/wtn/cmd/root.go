// Package cmd implements the wtn CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/worthyten/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "wtn",
		Short: "CLI client for WorthyTen",
		Long: "wtn is a command-line client for the WorthyTen API.\n" +
			"It walks a device through the valuation stages, manages the pricing\n" +
			"catalog, and lists submitted orders.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.wtn.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(sessionCmd())
	rootCmd.AddCommand(questionnaireCmd())
	rootCmd.AddCommand(pricingCmd())
	rootCmd.AddCommand(lensesCmd())
	rootCmd.AddCommand(ordersCmd())
	rootCmd.AddCommand(stateCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wtn")
	}

	viper.SetEnvPrefix("WTN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

// errorHint turns the server's redirect and recovery details into a next
// step for the user.
func errorHint(err error) string {
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) {
		return ""
	}
	if stage, ok := apiErr.RedirectStage(); ok {
		return "Continue at the " + stage + " stage."
	}
	if rec := apiErr.Recovery(); len(rec) > 0 {
		return "Options: " + strings.Join(rec, ", ") + ". Start over with `wtn session start`."
	}
	return ""
}
