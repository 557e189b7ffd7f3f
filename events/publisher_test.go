package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-frontdesk/models"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestTableStatusChangedPublishes(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, exchange: "frontdesk"}

	p.TableStatusChanged(models.Table{ID: 2, Number: 7, Status: models.TableStatusFree})

	require.Len(t, ch.sent, 1)
	assert.Equal(t, "frontdesk", ch.sent[0].exchange)
	assert.Equal(t, RoutingTableStatusChanged, ch.sent[0].key)
	assert.Equal(t, "application/json", ch.sent[0].msg.ContentType)
	assert.NotEmpty(t, ch.sent[0].msg.MessageId)

	var event TableStatusEvent
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &event))
	assert.Equal(t, uint(2), event.TableID)
	assert.Equal(t, models.TableStatusFree, event.Status)
}

func TestBillTotalChangedPublishes(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, exchange: "frontdesk"}

	p.BillTotalChanged(models.Bill{ID: 4, OrderID: 8, Total: decimal.NewFromInt(300)})

	require.Len(t, ch.sent, 1)
	assert.Equal(t, RoutingBillTotalChanged, ch.sent[0].key)

	var event BillTotalEvent
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &event))
	assert.Equal(t, "300.00", event.Total)
	assert.Equal(t, uint(8), event.OrderID)
}

func TestPublishWrapsBrokerError(t *testing.T) {
	p := &Publisher{channel: &fakeChannel{err: errors.New("channel closed")}, exchange: "frontdesk"}

	err := p.Publish(context.Background(), RoutingBillTotalChanged, map[string]int{"bill_id": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")

	// notifier methods swallow the error
	assert.NotPanics(t, func() { p.BillTotalChanged(models.Bill{ID: 1}) })
}
