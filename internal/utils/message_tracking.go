package utils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// messageMap remembers the Kafka message each content ID arrived in, so the
// offset can be committed once that content is durably handled downstream.
var messageMap sync.Map

func TrackMessage(contentID string, msg *kafka.Message) {
	messageMap.Store(contentID, msg)
}

func GetMessageForContent(contentID string) (*kafka.Message, bool) {
	msg, ok := messageMap.Load(contentID)
	if !ok {
		return nil, false
	}
	messageMap.Delete(contentID)
	return msg.(*kafka.Message), true
}
