package kafka

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/kafkalens/v1/avro"
)

// TestKafkaAvroRoundTrip publishes JSON documents through the Avro serializer to a
// Redpanda broker and reads them back with a consumer group.
func TestKafkaAvroRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	broker, containerInstance := initializeRedpanda(ctx, t)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	createTopic(t, broker, "orders")

	codec := newOrderCodec(t)

	producer, err := NewClient(Config{
		Brokers:  []string{broker},
		Topic:    "orders",
		DataType: DataTypeAvro,
	})
	require.NoError(t, err)
	producer.UseAvro(codec)
	defer producer.GracefulShutdown()

	docs := []string{
		`{"id":"a","qty":1}`,
		`{"id":"b","qty":2}`,
		`{"id":"c","qty":3}`,
	}
	for _, doc := range docs {
		require.NoError(t, producer.Publish(ctx, "key", []byte(doc), map[string]string{"source": "it"}))
	}

	var consumer *KafkaClient
	app := fx.New(
		FXModule,
		fx.Provide(
			func() Config {
				return Config{
					Brokers:     []string{broker},
					Topic:       "orders",
					GroupID:     "kafkalens-it",
					IsConsumer:  true,
					DataType:    DataTypeAvro,
					StartOffset: kafka.FirstOffset,
				}
			},
			func() *avro.Codec { return codec },
		),
		fx.Populate(&consumer),
	)
	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(startCtx))

	consumeCtx, consumeCancel := context.WithTimeout(ctx, 60*time.Second)
	defer consumeCancel()
	wg := &sync.WaitGroup{}

	var got []string
	for msg := range consumer.Consume(consumeCtx, wg) {
		require.NoError(t, msg.DecodeError())
		assert.Equal(t, int32(7), msg.SchemaID())
		assert.Equal(t, "key", msg.Key())
		assert.Equal(t, "it", msg.Header()["source"])
		require.NoError(t, msg.CommitMsg())

		got = append(got, string(msg.Body()))
		if len(got) == len(docs) {
			consumeCancel()
		}
	}
	wg.Wait()

	assert.Equal(t, docs, got)
	require.NoError(t, app.Stop(ctx))
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	require.Eventually(t, func() bool {
		conn, err := kafka.Dial("tcp", broker)
		if err != nil {
			return false
		}
		defer conn.Close()
		return conn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}) == nil
	}, 30*time.Second, 500*time.Millisecond, "topic could not be created")
}

// initializeRedpanda starts a single node Redpanda broker advertising a fixed
// host port, so clients outside the container can reach it.
func initializeRedpanda(ctx context.Context, t *testing.T) (string, testcontainers.Container) {
	t.Helper()

	hostPort, err := getFreePort()
	require.NoError(t, err)

	req := testcontainers.ContainerRequest{
		Image:        "docker.redpanda.com/redpandadata/redpanda:v24.2.4",
		ExposedPorts: []string{"9092/tcp"},
		Cmd: []string{
			"redpanda", "start",
			"--mode", "dev-container",
			"--smp", "1",
			"--kafka-addr", "PLAINTEXT://0.0.0.0:9092",
			"--advertise-kafka-addr", fmt.Sprintf("PLAINTEXT://127.0.0.1:%s", hostPort),
		},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = nat.PortMap{
				"9092/tcp": []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: hostPort}},
			}
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("9092/tcp").WithStartupTimeout(60*time.Second),
			wait.ForLog("Successfully started Redpanda!").WithStartupTimeout(60*time.Second),
		),
	}

	containerInstance, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	return net.JoinHostPort("127.0.0.1", hostPort), containerInstance
}

func getFreePort() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port), nil
}
