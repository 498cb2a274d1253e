// Package mq は未払い注文の自動キャンセルをRabbitMQで遅延配送する。
// 送信側はTTL付きで待機キューへ入れ、期限切れがDLX経由で実行キューに落ちる。
package mq

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	cancelWaitQueue  = "order.cancel.wait"
	cancelReadyQueue = "order.cancel.ready"
)

func Connect(url string) (*amqp.Connection, error) {
	return amqp.Dial(url)
}

// declareTopology は待機キューと実行キューを冪等に宣言する。
func declareTopology(ch *amqp.Channel) error {
	if _, err := ch.QueueDeclare(cancelReadyQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", cancelReadyQueue, err)
	}

	_, err := ch.QueueDeclare(cancelWaitQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cancelReadyQueue,
	})
	if err != nil {
		return fmt.Errorf("declare %s: %w", cancelWaitQueue, err)
	}
	return nil
}

// CancelScheduler は注文IDを遅延付きでキューに積む。
type CancelScheduler struct {
	ch *amqp.Channel
}

func NewCancelScheduler(conn *amqp.Connection) (*CancelScheduler, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := declareTopology(ch); err != nil {
		ch.Close()
		return nil, err
	}
	return &CancelScheduler{ch: ch}, nil
}

func (s *CancelScheduler) Schedule(ctx context.Context, orderID int64, delay time.Duration) error {
	return s.ch.PublishWithContext(ctx, "", cancelWaitQueue, false, false, amqp.Publishing{
		MessageId:    uuid.NewString(),
		ContentType:  "text/plain",
		DeliveryMode: amqp.Persistent,
		Expiration:   strconv.FormatInt(delay.Milliseconds(), 10),
		Body:         []byte(strconv.FormatInt(orderID, 10)),
	})
}

func (s *CancelScheduler) Close() error {
	return s.ch.Close()
}

// ConsumeCancel は実行キューを読み、注文IDごとにhandlerを呼ぶ。
// handlerが失敗してもメッセージは再投入しない（キャンセル漏れはログで追う）。
func ConsumeCancel(ctx context.Context, conn *amqp.Connection, log *slog.Logger,
	handler func(ctx context.Context, orderID int64) error) error {

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := declareTopology(ch); err != nil {
		return err
	}

	deliveries, err := ch.Consume(cancelReadyQueue, "order-cancel-consumer", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			orderID, err := strconv.ParseInt(string(d.Body), 10, 64)
			if err != nil {
				log.Error("malformed cancel message", "body", string(d.Body), "message_id", d.MessageId)
				_ = d.Ack(false)
				continue
			}

			if err := handler(ctx, orderID); err != nil {
				log.Error("cancel handler failed", "order_id", orderID, "error", err)
			}
			_ = d.Ack(false)
		}
	}
}
