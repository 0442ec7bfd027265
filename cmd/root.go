package cmd

import (
	"fmt"
	"os"

	"github.com/carton-io/carton/cmd/fixture"
	"github.com/carton-io/carton/cmd/inspect"
	"github.com/carton-io/carton/cmd/perf"
	"github.com/carton-io/carton/cmd/util"
	"github.com/carton-io/carton/lib/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "carton",
		Short: "typed value containers",
		Long: fmt.Sprintf(`carton (v%s)

A typed value container library written in Go, providing a binary
value codec, policy-based container storage and messaging envelopes.`, Version),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}
			logging.Init("carton", viper.GetString("log-level"), viper.GetBool("pretty"))
			return nil
		},
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of carton",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("carton v%s\n", Version)
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(fixture.FixtureCommands)
	RootCmd.AddCommand(inspect.InspectCmd)
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("log level to use (trace, debug, info, warn, error)"))
	key = "pretty"
	RootCmd.PersistentFlags().Bool(key, false, util.WrapString("pretty-print log output instead of JSON"))
	key = "policy"
	RootCmd.PersistentFlags().String(key, "dynamic", util.WrapString("storage policy to use (dynamic, indexed, typed)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
