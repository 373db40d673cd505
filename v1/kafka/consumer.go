package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"
)

// fetchRetryDelay is the pause after a failed fetch before trying again.
const fetchRetryDelay = 100 * time.Millisecond

// ConsumerMessage implements the Message interface and wraps a kafka-go record
// together with its decoded body.
type ConsumerMessage struct {
	msg       kafka.Message
	body      []byte
	schemaID  int32
	decodeErr error
	headers   map[string]string
	commit    func(ctx context.Context, msgs ...kafka.Message) error
}

// CommitMsg commits the record offset. It is a no-op when the client has no
// consumer group or commits automatically.
func (m *ConsumerMessage) CommitMsg() error {
	if m.commit == nil {
		return nil
	}
	if err := m.commit(context.Background(), m.msg); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	return nil
}

func (m *ConsumerMessage) Body() []byte              { return m.body }
func (m *ConsumerMessage) RawValue() []byte          { return m.msg.Value }
func (m *ConsumerMessage) Key() string               { return string(m.msg.Key) }
func (m *ConsumerMessage) Header() map[string]string { return m.headers }
func (m *ConsumerMessage) SchemaID() int32           { return m.schemaID }
func (m *ConsumerMessage) DecodeError() error        { return m.decodeErr }
func (m *ConsumerMessage) Partition() int            { return m.msg.Partition }
func (m *ConsumerMessage) Offset() int64             { return m.msg.Offset }
func (m *ConsumerMessage) Time() time.Time           { return m.msg.Time }

// Context returns parent carrying the trace context found in the record headers.
func (m *ConsumerMessage) Context(parent context.Context) context.Context {
	return otel.GetTextMapPropagator().Extract(parent, propagation.MapCarrier(m.headers))
}

// Consume starts consuming records from the configured topic.
//
// Parameters:
//   - ctx: Context for cancellation control
//   - wg: WaitGroup for coordinating shutdown
//
// Returns a channel delivering one Message per record in partition order. The
// channel is closed when ctx is cancelled or the client shuts down. Records
// whose value cannot be decoded are delivered with DecodeError set, or dropped
// when Config.SkipUndecodable is true.
//
// Example:
//
//	wg := &sync.WaitGroup{}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	for msg := range client.Consume(ctx, wg) {
//	    if err := msg.DecodeError(); err != nil {
//	        log.Warn("undecodable record", err, nil)
//	        continue
//	    }
//	    fmt.Println(string(msg.Body()))
//	    if err := msg.CommitMsg(); err != nil {
//	        log.Error("Failed to commit message", err, nil)
//	    }
//	}
//	wg.Wait()
func (k *KafkaClient) Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message {
	outChan := make(chan Message, DefaultConsumeBuffer)

	reader := k.getReader()
	if reader == nil {
		k.logError(ctx, "Cannot consume", ErrNoReader, nil)
		close(outChan)
		return outChan
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(outChan)
		for {
			record, ok := k.fetch(ctx, reader)
			if !ok {
				return
			}
			msg, ok := k.toMessage(ctx, reader, record)
			if !ok {
				continue
			}
			if !k.deliver(ctx, reader, outChan, msg) {
				return
			}
		}
	}()
	return outChan
}

// ConsumeParallel starts consuming records with several decoding workers.
// A single fetcher reads from the broker and the workers deserialize records
// concurrently, so ordering across records is not preserved. With workers <= 1
// it behaves like Consume.
//
// Parameters:
//   - ctx: Context for cancellation control
//   - wg: WaitGroup for coordinating shutdown
//   - workers: Number of concurrent decoding workers
//
// Example:
//
//	for msg := range client.ConsumeParallel(ctx, wg, 5) {
//	    processMessage(msg)
//	    _ = msg.CommitMsg()
//	}
func (k *KafkaClient) ConsumeParallel(ctx context.Context, wg *sync.WaitGroup, workers int) <-chan Message {
	if workers <= 1 {
		return k.Consume(ctx, wg)
	}

	outChan := make(chan Message, DefaultConsumeBuffer)

	reader := k.getReader()
	if reader == nil {
		k.logError(ctx, "Cannot consume", ErrNoReader, nil)
		close(outChan)
		return outChan
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(outChan)

		records := make(chan kafka.Message, workers)
		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			defer close(records)
			for {
				record, ok := k.fetch(gctx, reader)
				if !ok {
					return nil
				}
				select {
				case records <- record:
				case <-gctx.Done():
					return nil
				case <-k.shutdownSignal:
					return nil
				}
			}
		})

		for i := 0; i < workers; i++ {
			g.Go(func() error {
				for record := range records {
					msg, ok := k.toMessage(gctx, reader, record)
					if !ok {
						continue
					}
					if !k.deliver(gctx, reader, outChan, msg) {
						return nil
					}
				}
				return nil
			})
		}

		_ = g.Wait()
	}()
	return outChan
}

func (k *KafkaClient) getReader() recordReader {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.reader
}

// fetch reads the next record, retrying transient errors. It returns false once
// ctx is done, the client shuts down or the reader is closed.
func (k *KafkaClient) fetch(ctx context.Context, reader recordReader) (kafka.Message, bool) {
	for {
		select {
		case <-k.shutdownSignal:
			k.logInfo(ctx, "Stopping consumer due to shutdown signal", map[string]interface{}{
				"topic": k.cfg.Topic,
			})
			return kafka.Message{}, false
		case <-ctx.Done():
			k.logInfo(ctx, "Stopping consumer due to context cancellation", map[string]interface{}{
				"topic": k.cfg.Topic,
				"error": ctx.Err().Error(),
			})
			return kafka.Message{}, false
		default:
		}

		record, err := reader.FetchMessage(ctx)
		if err == nil {
			return record, true
		}
		if errors.Is(err, io.EOF) {
			// reader closed
			return kafka.Message{}, false
		}
		if ctx.Err() != nil {
			continue
		}

		k.logError(ctx, "Failed to fetch record", err, map[string]interface{}{
			"topic": k.cfg.Topic,
		})
		k.observeOperation("fetch", k.cfg.Topic, "", 0, err, 0, nil)

		select {
		case <-time.After(fetchRetryDelay):
		case <-ctx.Done():
		case <-k.shutdownSignal:
		}
	}
}

// toMessage decodes record. It returns false when the record is skipped.
func (k *KafkaClient) toMessage(ctx context.Context, reader recordReader, record kafka.Message) (*ConsumerMessage, bool) {
	start := time.Now()

	k.mu.RLock()
	deserializer := k.deserializer
	k.mu.RUnlock()

	msg := &ConsumerMessage{
		msg:     record,
		headers: make(map[string]string, len(record.Headers)),
	}
	for _, h := range record.Headers {
		msg.headers[h.Key] = string(h.Value)
	}
	if k.cfg.GroupID != "" && !k.cfg.EnableAutoCommit {
		msg.commit = reader.CommitMessages
	}

	// tombstones carry no value to decode
	if record.Value != nil {
		id, body, err := deserializer.Deserialize(msg.Context(ctx), record.Value)
		msg.schemaID = id
		msg.body = body
		if err != nil {
			msg.decodeErr = fmt.Errorf("%w: %w", ErrDeserialize, err)
		}
	}

	partition := strconv.Itoa(record.Partition)
	lag := record.HighWaterMark - record.Offset - 1
	if lag < 0 {
		lag = 0
	}
	k.observeOperation("consume", k.cfg.Topic, partition, time.Since(start), msg.decodeErr, int64(len(record.Value)), map[string]interface{}{
		"lag": lag,
	})

	if msg.decodeErr != nil && k.cfg.SkipUndecodable {
		fields := map[string]interface{}{
			"topic":     k.cfg.Topic,
			"partition": record.Partition,
			"offset":    record.Offset,
		}
		k.logWarn(ctx, "Skipping undecodable record", msg.decodeErr, fields)
		if k.cfg.GroupID != "" {
			if err := reader.CommitMessages(ctx, record); err != nil {
				k.logError(ctx, "Failed to commit skipped record", err, fields)
			}
		}
		return nil, false
	}

	return msg, true
}

// deliver hands msg to the consumer and commits it when auto commit is on.
// It returns false when consumption must stop.
func (k *KafkaClient) deliver(ctx context.Context, reader recordReader, outChan chan<- Message, msg *ConsumerMessage) bool {
	select {
	case outChan <- msg:
	case <-ctx.Done():
		return false
	case <-k.shutdownSignal:
		return false
	}

	if k.cfg.GroupID != "" && k.cfg.EnableAutoCommit {
		if err := reader.CommitMessages(ctx, msg.msg); err != nil {
			k.logError(ctx, "Failed to commit record", err, map[string]interface{}{
				"topic":     k.cfg.Topic,
				"partition": msg.msg.Partition,
				"offset":    msg.msg.Offset,
			})
		}
	}
	return true
}
