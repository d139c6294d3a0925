package producer

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/spacyk/eshop-recipe/internal/infra/producer/balancer"
)

type OrderEvent string

var (
	OrderEventItemAdded        OrderEvent = "cart_item_added"
	OrderEventItemRemoved      OrderEvent = "cart_item_removed"
	OrderEventItemCleared      OrderEvent = "cart_item_cleared"
	OrderEventCheckoutSubmited OrderEvent = "checkout_submitted"
)

type OrderEventPayload struct {
	UserID    int       `json:"user_id"`
	OrderID   uint      `json:"order_id"`
	ItemID    uint      `json:"item_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type IOrderEventProducer interface {
	ProduceCartItemAdded(ctx context.Context, userID int, orderID, itemID uint) error
	ProduceCartItemRemoved(ctx context.Context, userID int, orderID, itemID uint) error
	ProduceCartItemCleared(ctx context.Context, userID int, orderID, itemID uint) error
	ProduceCheckoutSubmitted(ctx context.Context, userID int, orderID uint) error
	Close() error
}

// 需要根據 userid 做 balancer 分區
// topic: 由 producer 創建時設置
type OrderEventProducer struct {
	writer *kafka.Writer
}

func NewOrderEventProducer(brokers []string, topic string, numPartitions int) *OrderEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     balancer.NewOrderEventBalancer(numPartitions),
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}
	return &OrderEventProducer{writer: writer}
}

func (p *OrderEventProducer) ProduceCartItemAdded(ctx context.Context, userID int, orderID, itemID uint) error {
	return p.produce(ctx, OrderEventItemAdded, OrderEventPayload{UserID: userID, OrderID: orderID, ItemID: itemID})
}

func (p *OrderEventProducer) ProduceCartItemRemoved(ctx context.Context, userID int, orderID, itemID uint) error {
	return p.produce(ctx, OrderEventItemRemoved, OrderEventPayload{UserID: userID, OrderID: orderID, ItemID: itemID})
}

func (p *OrderEventProducer) ProduceCartItemCleared(ctx context.Context, userID int, orderID, itemID uint) error {
	return p.produce(ctx, OrderEventItemCleared, OrderEventPayload{UserID: userID, OrderID: orderID, ItemID: itemID})
}

func (p *OrderEventProducer) ProduceCheckoutSubmitted(ctx context.Context, userID int, orderID uint) error {
	return p.produce(ctx, OrderEventCheckoutSubmited, OrderEventPayload{UserID: userID, OrderID: orderID})
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}

func (p *OrderEventProducer) produce(ctx context.Context, event OrderEvent, payload OrderEventPayload) error {
	payload.Timestamp = time.Now().UTC()
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(payload.UserID)),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(event),
			},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}
