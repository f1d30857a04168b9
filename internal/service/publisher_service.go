package service

import (
	"context"
	"encoding/json"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error

	// PublishEvent routes a chat event through the bus toward the hub.
	PublishEvent(ctx context.Context, channel, eventType string, data interface{}) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.pubSub.Publish(s.topicName, msg)
}

func (s *publisherService) PublishEvent(ctx context.Context, channel, eventType string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	event := dto.ChatEvent{
		Channel: channel,
		Type:    eventType,
		Data:    raw,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.Publish(ctx, payload)
}
