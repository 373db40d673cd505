package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

// cfg holds the configuration loaded before any subcommand runs.
var cfg *Config

var rootCmd = &cobra.Command{
	Use:   "kafkalens",
	Short: "Inspect and produce Confluent Avro records as JSON",
	Long: `kafkalens converts Confluent-framed Avro records to JSON and back.

It decodes and encodes single records offline with a local schema file, talks to a
Schema Registry, and consumes or produces whole topics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err = loadConfig(cfgFile)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file (YAML), overridable with KAFKALENS_* environment variables")
}

// Execute is called by the main method of the package
func Execute() error {
	return rootCmd.Execute()
}
