package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/kafkalens/v1/avro"
	"github.com/Aleph-Alpha/kafkalens/v1/schema_registry"
)

var checkOnly bool

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a local Avro schema under a subject",
	Long: `Register validates a local schema file and registers it under --subject.
With --check only the compatibility with the latest version is reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if schemaFile == "" || subject == "" {
			return fmt.Errorf("--schema-file and --subject are required")
		}
		definition, err := readSchemaFile(schemaFile)
		if err != nil {
			return err
		}
		// reject what the codec could not use before touching the registry
		if _, err := avro.Resolve(0, definition); err != nil {
			return err
		}

		registry, err := schema_registry.NewClient(cfg.SchemaRegistry)
		if err != nil {
			return err
		}

		if checkOnly {
			compatible, err := registry.CheckCompatibility(cmd.Context(), subject, definition, "AVRO")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "compatible: %t\n", compatible)
			return err
		}

		id, err := registry.RegisterSchema(cmd.Context(), subject, definition, "AVRO")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d\n", id)
		return err
	},
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List the subjects of the Schema Registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := schema_registry.NewClient(cfg.SchemaRegistry)
		if err != nil {
			return err
		}
		subjects, err := registry.ListSubjects(cmd.Context())
		if err != nil {
			return err
		}
		for _, s := range subjects {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), s); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&schemaFile, "schema-file", "", "local Avro schema file")
	registerCmd.Flags().StringVar(&subject, "subject", "", "registry subject")
	registerCmd.Flags().BoolVar(&checkOnly, "check", false, "only check compatibility")
	rootCmd.AddCommand(registerCmd, subjectsCmd)
}
