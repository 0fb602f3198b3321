package queue

import (
	"context"
	"fmt"
	"time"
)

var queueMap = map[string]Instance{}

func Register(id string, client Instance) {
	queueMap[id] = client
}

func Get(id string) (Instance, error) {
	instance, ok := queueMap[id]
	if !ok {
		return nil, fmt.Errorf("failed to find queue[%s]", id)
	}
	return instance, nil
}

type Instance interface {
	Connect() error
	Close() error
	Push(PushOpts) (*PushOutput, error)
	Subscribe(SubscribeOpts) error
}

type Message struct {
	Data    []byte `json:"data"`
	Subject string `json:"subject"`
}

type MessageHandler func(context.Context, Message) error

type PushOpts struct {
	Data  []byte
	Queue QueueOpts
}

type PushOutput struct {
	MessageSizeBytes int
	Queue            QueueOpts
}

type QueueOpts struct {
	Stream  string
	Subject string
}

type SubscribeOpts struct {
	ConsumerId string
	Context    context.Context
	Handler    MessageHandler
	Queue      QueueOpts
	NakBackoff time.Duration
}
