package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ReconcileExchange = "course_file.exchange"

	// OrphanObjectQueue carries objects whose metadata write failed so a
	// consumer can retry the database update or clean up the object.
	OrphanObjectQueue      = "course_file.orphan_object"
	OrphanObjectRoutingKey = "course_file.orphan_object"
)

// OrphanObjectMessage describes a stored object with no matching metadata row.
type OrphanObjectMessage struct {
	CourseFileID string `json:"course_file_id"`
	StorageKey   string `json:"storage_key"`
	Slot         string `json:"slot"`
	Reason       string `json:"reason"`
	Timestamp    int64  `json:"timestamp"`
}

// ReconcileService publishes orphan-object notifications for the
// reconciliation consumer.
type ReconcileService struct {
	channel *amqp.Channel
}

func InitReconcileService(channel *amqp.Channel) *ReconcileService {
	service := &ReconcileService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		ReconcileExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Reconcile exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		OrphanObjectQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare OrphanObject queue: " + err.Error())
	}

	err = channel.QueueBind(
		OrphanObjectQueue,
		OrphanObjectRoutingKey,
		ReconcileExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind OrphanObject queue: " + err.Error())
	}

	return service
}

// PublishOrphanObject publishes an orphan-object message to the queue.
func (s *ReconcileService) PublishOrphanObject(ctx context.Context, msg OrphanObjectMessage) error {
	msg.Timestamp = time.Now().Unix()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		ReconcileExchange,
		OrphanObjectRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
