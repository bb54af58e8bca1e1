package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type queueDeclare struct {
	Name       string
	Durable    bool
	AutoDelete bool
	Exclusive  bool
	NoWait     bool
}

type exchangeDeclare struct {
	Name    string
	Kind    string
	Durable bool
}

type publishRecord struct {
	Exchange   string
	RoutingKey string
	Msg        amqp091.Publishing
}

type fakeChannel struct {
	mu        sync.Mutex
	closed    bool
	queues    []queueDeclare
	exchanges []exchangeDeclare
	published []publishRecord
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queues = append(f.queues, queueDeclare{name, durable, autoDelete, exclusive, noWait})
	return amqp091.Queue{Name: name}, nil
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchanges = append(f.exchanges, exchangeDeclare{name, kind, durable})
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, publishRecord{exchange, key, msg})
	return nil
}

func (f *fakeChannel) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeChannel) records() ([]queueDeclare, []exchangeDeclare, []publishRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]queueDeclare(nil), f.queues...),
		append([]exchangeDeclare(nil), f.exchanges...),
		append([]publishRecord(nil), f.published...)
}

type fakeConn struct {
	mu     sync.Mutex
	closed int
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

// fakeBroker hands out channels and counts dials. The sleep widens the
// window in which racing first publishes could double-dial.
type fakeBroker struct {
	mu    sync.Mutex
	dials int
	err   error
	ch    *fakeChannel
	conn  *fakeConn
}

func (b *fakeBroker) dial(url string) (amqpConnection, amqpChannel, error) {
	time.Sleep(5 * time.Millisecond)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dials++
	if b.err != nil {
		return nil, nil, b.err
	}
	b.ch = &fakeChannel{}
	b.conn = &fakeConn{}
	return b.conn, b.ch, nil
}

func (b *fakeBroker) dialCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dials
}

func newTestProducer(broker *fakeBroker) *Producer {
	p := NewProducer("amqp://test", zap.NewNop())
	p.dial = broker.dial
	return p
}

// Concurrent first publishes must share a single connection.
func TestConcurrentFirstPublishesDialOnce(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestProducer(broker)

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Publish("notifications", map[string]string{"k": "v"}))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, broker.dialCount())

	_, _, published := broker.ch.records()
	assert.Len(t, published, n)
}

func TestPublishDeclaresDurableQueueAndPersistentDelivery(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestProducer(broker)

	payload := map[string]string{"type": "order_created"}
	require.NoError(t, p.Publish("logistics_orders", payload))

	queues, _, published := broker.ch.records()

	require.Len(t, queues, 1)
	assert.Equal(t, queueDeclare{
		Name:       "logistics_orders",
		Durable:    true,
		AutoDelete: false,
		Exclusive:  false,
		NoWait:     false,
	}, queues[0])

	require.Len(t, published, 1)
	assert.Equal(t, "", published[0].Exchange) // default exchange, routed by queue name
	assert.Equal(t, "logistics_orders", published[0].RoutingKey)
	assert.Equal(t, amqp091.Persistent, published[0].Msg.DeliveryMode)
	assert.Equal(t, "application/json", published[0].Msg.ContentType)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(published[0].Msg.Body, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestPublishToExchangeDeclaresDurableExchange(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestProducer(broker)

	require.NoError(t, p.PublishToExchange("events", "orders.created", map[string]string{"k": "v"}, "topic"))

	_, exchanges, published := broker.ch.records()
	require.Len(t, exchanges, 1)
	assert.Equal(t, exchangeDeclare{Name: "events", Kind: "topic", Durable: true}, exchanges[0])

	require.Len(t, published, 1)
	assert.Equal(t, "events", published[0].Exchange)
	assert.Equal(t, "orders.created", published[0].RoutingKey)
	assert.Equal(t, amqp091.Persistent, published[0].Msg.DeliveryMode)
}

func TestPublishToExchangeDefaultsToDirect(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestProducer(broker)

	require.NoError(t, p.PublishToExchange("events", "key", map[string]string{"k": "v"}, ""))

	_, exchanges, _ := broker.ch.records()
	require.Len(t, exchanges, 1)
	assert.Equal(t, "direct", exchanges[0].Kind)
}

// A failed dial surfaces the error; the next publish pays the connect
// cost again instead of staying broken.
func TestPublishRedialsAfterDialFailure(t *testing.T) {
	broker := &fakeBroker{err: errors.New("broker unreachable")}
	p := newTestProducer(broker)

	err := p.Publish("notifications", map[string]string{"k": "v"})
	assert.Error(t, err)
	assert.Equal(t, 1, broker.dialCount())

	broker.mu.Lock()
	broker.err = nil
	broker.mu.Unlock()

	require.NoError(t, p.Publish("notifications", map[string]string{"k": "v"}))
	assert.Equal(t, 2, broker.dialCount())
}

func TestPublishRedialsAfterChannelClosed(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestProducer(broker)

	require.NoError(t, p.Publish("notifications", map[string]string{"k": "v"}))
	require.Equal(t, 1, broker.dialCount())

	firstConn := broker.conn
	broker.ch.Close()

	require.NoError(t, p.Publish("notifications", map[string]string{"k": "v"}))
	assert.Equal(t, 2, broker.dialCount())

	// the stale connection was released before redialing
	firstConn.mu.Lock()
	defer firstConn.mu.Unlock()
	assert.GreaterOrEqual(t, firstConn.closed, 1)
}

func TestCloseReleasesChannelAndConnection(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestProducer(broker)

	require.NoError(t, p.Connect())
	require.Equal(t, 1, broker.dialCount())

	ch, conn := broker.ch, broker.conn
	require.NoError(t, p.Close())
	assert.True(t, ch.IsClosed())

	conn.mu.Lock()
	closed := conn.closed
	conn.mu.Unlock()
	assert.Equal(t, 1, closed)

	// Close is safe to call twice and publish reconnects afterwards.
	require.NoError(t, p.Close())
	require.NoError(t, p.Publish("notifications", map[string]string{"k": "v"}))
	assert.Equal(t, 2, broker.dialCount())
}

func TestPublishRejectsUnmarshalablePayload(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestProducer(broker)

	err := p.Publish("notifications", func() {})
	assert.Error(t, err)
	assert.Equal(t, 0, broker.dialCount())
}
