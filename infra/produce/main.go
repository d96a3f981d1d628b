package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	ReconcileService *ReconcileService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	reconcileService := InitReconcileService(channel)
	if reconcileService == nil {
		panic("Failed to initialize Reconcile service")
	}

	produceInstance = &Produce{
		ReconcileService: reconcileService,
	}

	return produceInstance
}
