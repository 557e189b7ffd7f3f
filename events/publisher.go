package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

const (
	ExchangeKind = "topic"

	RoutingTableStatusChanged = "table.status_changed"
	RoutingBillTotalChanged   = "bill.total_changed"

	publishTimeout = 5 * time.Second
)

// channel is the part of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type TableStatusEvent struct {
	TableID  uint      `json:"table_id"`
	Number   int       `json:"number"`
	Status   string    `json:"status"`
	Occurred time.Time `json:"occurred_at"`
}

type BillTotalEvent struct {
	BillID   uint      `json:"bill_id"`
	OrderID  uint      `json:"order_id"`
	Total    string    `json:"total"`
	Occurred time.Time `json:"occurred_at"`
}

// Publisher sends derived-state changes to a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", routingKey, err)
	}

	utils.InfoLogger.Debugf("[RabbitMQ] published %s", routingKey)
	return nil
}

func (p *Publisher) TableStatusChanged(table models.Table) {
	p.publishLogged(RoutingTableStatusChanged, TableStatusEvent{
		TableID:  table.ID,
		Number:   table.Number,
		Status:   table.Status,
		Occurred: time.Now().UTC(),
	})
}

func (p *Publisher) BillTotalChanged(bill models.Bill) {
	p.publishLogged(RoutingBillTotalChanged, BillTotalEvent{
		BillID:   bill.ID,
		OrderID:  bill.OrderID,
		Total:    bill.Total.StringFixed(2),
		Occurred: time.Now().UTC(),
	})
}

// publishLogged runs after commit, so a broker failure is logged instead of returned.
func (p *Publisher) publishLogged(routingKey string, payload interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		utils.ErrorLogger.Printf("Failed to publish event: %v", err)
	}
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
