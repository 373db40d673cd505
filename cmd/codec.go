package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"

	"github.com/Aleph-Alpha/kafkalens/v1/avro"
	"github.com/Aleph-Alpha/kafkalens/v1/schema_registry"
)

// offlineSubject is the subject a --schema-file is registered under.
const offlineSubject = "kafkalens-offline"

var (
	schemaFile string
	schemaID   int32
	subject    string
	useHex     bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a framed Avro record from stdin to JSON",
	Long: `Decode reads one Confluent-framed Avro record from stdin and prints it as JSON.

With --schema-file the schema is read from a local file (comments allowed) and
used for whatever schema id the record header carries. Without it the header id is
looked up in the Schema Registry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		if useHex {
			if input, err = decodeHex(input); err != nil {
				return err
			}
		}

		codec, closeFn, err := newCodec(headerID(input))
		if err != nil {
			return err
		}
		defer closeFn()

		_, text, err := codec.Decode(cmd.Context(), input)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a JSON document from stdin into a framed Avro record",
	Long: `Encode reads one JSON document from stdin and writes the Confluent-framed Avro record.

With --schema-file the record is framed with --id. Without it the latest schema of
--subject is fetched from the Schema Registry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}

		codec, closeFn, err := newCodec(schemaID)
		if err != nil {
			return err
		}
		defer closeFn()

		target := subject
		if schemaFile != "" {
			target = offlineSubject
		} else if target == "" {
			return fmt.Errorf("--subject is required without --schema-file")
		}

		record, err := codec.Encode(cmd.Context(), string(input), target)
		if err != nil {
			return err
		}
		if useHex {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(record))
			return err
		}
		_, err = cmd.OutOrStdout().Write(record)
		return err
	},
}

func init() {
	for _, c := range []*cobra.Command{decodeCmd, encodeCmd} {
		c.Flags().StringVar(&schemaFile, "schema-file", "", "local Avro schema file")
		c.Flags().BoolVar(&useHex, "hex", false, "records are hex encoded")
		rootCmd.AddCommand(c)
	}
	encodeCmd.Flags().Int32Var(&schemaID, "id", 1, "schema id written into the header with --schema-file")
	encodeCmd.Flags().StringVar(&subject, "subject", "", "registry subject to encode with")
}

// newCodec returns a codec over the local schema file registered under id, or
// over the registry when no file is given. closeFn releases the registry caches.
func newCodec(id int32) (*avro.Codec, func(), error) {
	if schemaFile != "" {
		definition, err := readSchemaFile(schemaFile)
		if err != nil {
			return nil, nil, err
		}
		provider := avro.NewStaticProvider()
		if _, err := provider.Register(id, definition, offlineSubject); err != nil {
			return nil, nil, err
		}
		return avro.NewCodec(provider), func() {}, nil
	}

	registry, err := schema_registry.NewClient(cfg.SchemaRegistry)
	if err != nil {
		return nil, nil, err
	}
	provider := schema_registry.NewProvider(registry, schema_registry.ProviderConfig{
		SubjectCacheTTL: cfg.SchemaRegistry.SubjectCacheTTL,
	})
	return avro.NewCodec(provider), provider.Close, nil
}

// headerID returns the schema id a record is framed with. An unreadable header
// yields 0 and is reported by Decode.
func headerID(record []byte) int32 {
	id, _, err := avro.ReadHeader(record)
	if err != nil {
		return 0
	}
	return id
}

// readSchemaFile reads a schema definition, accepting comments and trailing commas.
func readSchemaFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema file: %w", err)
	}
	return string(jsonc.ToJSON(data)), nil
}

func decodeHex(input []byte) ([]byte, error) {
	cleaned := strings.Join(strings.Fields(string(input)), "")
	out, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return out, nil
}
