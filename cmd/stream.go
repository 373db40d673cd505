package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/kafkalens/v1/kafka"
)

// maxLineSize bounds a single JSON line read by produce.
const maxLineSize = 10 << 20

var (
	topic           string
	groupID         string
	brokers         []string
	workers         int
	skipUndecodable bool
	recordKey       string
)

// consumedRecord is the JSON line printed for each consumed record.
type consumedRecord struct {
	Partition int             `json:"partition"`
	Offset    int64           `json:"offset"`
	Timestamp time.Time       `json:"timestamp"`
	Key       string          `json:"key,omitempty"`
	SchemaID  int32           `json:"schema_id,omitempty"`
	Value     json.RawMessage `json:"value"`
	Error     string          `json:"error,omitempty"`
}

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Print the records of a topic as JSON lines",
	Long: `Consume reads a topic, decodes every record with the schema named in its
header and prints one JSON line per record until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		applyKafkaFlags(&c.Kafka)
		c.Kafka.IsConsumer = true
		if skipUndecodable {
			c.Kafka.SkipUndecodable = true
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var client *kafka.KafkaClient
		app := fx.New(streamModules(c), fx.Populate(&client))
		if err := app.Start(ctx); err != nil {
			return err
		}

		wg := &sync.WaitGroup{}
		err := printRecords(cmd.OutOrStdout(), client.ConsumeParallel(ctx, wg, workers))
		stop()
		wg.Wait()

		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if stopErr := app.Stop(stopCtx); err == nil {
			err = stopErr
		}
		return err
	},
}

var produceCmd = &cobra.Command{
	Use:   "produce",
	Short: "Publish JSON lines from stdin as Avro records",
	Long: `Produce reads one JSON document per line from stdin, encodes each with the
latest schema of --subject (default "<topic>-value") and publishes it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		applyKafkaFlags(&c.Kafka)
		c.Kafka.IsConsumer = false
		if subject != "" {
			c.Kafka.Subject = subject
		}

		var client *kafka.KafkaClient
		app := fx.New(streamModules(c), fx.Populate(&client))
		if err := app.Start(cmd.Context()); err != nil {
			return err
		}

		count, err := publishLines(cmd.Context(), client, cmd.InOrStdin(), recordKey)

		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if stopErr := app.Stop(stopCtx); err == nil {
			err = stopErr
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "published %d records\n", count)
		return err
	},
}

func init() {
	for _, c := range []*cobra.Command{consumeCmd, produceCmd} {
		c.Flags().StringVarP(&topic, "topic", "t", "", "topic, overrides kafka.topic")
		c.Flags().StringSliceVarP(&brokers, "brokers", "b", nil, "brokers, override kafka.brokers")
		rootCmd.AddCommand(c)
	}
	consumeCmd.Flags().StringVarP(&groupID, "group", "g", "", "consumer group, overrides kafka.group_id")
	consumeCmd.Flags().IntVarP(&workers, "workers", "w", 1, "decoding workers, ordering is lost above 1")
	consumeCmd.Flags().BoolVar(&skipUndecodable, "skip-undecodable", false, "drop records that cannot be decoded")
	produceCmd.Flags().StringVar(&subject, "subject", "", "registry subject, defaults to <topic>-value")
	produceCmd.Flags().StringVarP(&recordKey, "key", "k", "", "key of every published record")
}

func applyKafkaFlags(k *kafka.Config) {
	if topic != "" {
		k.Topic = topic
	}
	if len(brokers) > 0 {
		k.Brokers = brokers
	}
	if groupID != "" {
		k.GroupID = groupID
	}
}

// printRecords writes one JSON line per message until msgs is closed.
func printRecords(out io.Writer, msgs <-chan kafka.Message) error {
	enc := json.NewEncoder(out)
	for msg := range msgs {
		rec := consumedRecord{
			Partition: msg.Partition(),
			Offset:    msg.Offset(),
			Timestamp: msg.Time(),
			Key:       msg.Key(),
			SchemaID:  msg.SchemaID(),
			Value:     json.RawMessage("null"),
		}
		if err := msg.DecodeError(); err != nil {
			rec.Error = err.Error()
		} else if body := msg.Body(); body != nil {
			rec.Value = body
			if !json.Valid(body) {
				// raw data type
				quoted, _ := json.Marshal(string(body))
				rec.Value = quoted
			}
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
		if err := msg.CommitMsg(); err != nil {
			return err
		}
	}
	return nil
}

// publishLines publishes every non-empty line of in and returns how many were sent.
func publishLines(ctx context.Context, client kafka.Client, in io.Reader, key string) (int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	count := 0
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := client.Publish(ctx, key, []byte(text)); err != nil {
			return count, fmt.Errorf("line %d: %w", line, err)
		}
		count++
	}
	return count, scanner.Err()
}
