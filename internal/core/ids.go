package core

import "github.com/google/uuid"

// IDGenerator produces opaque unique identifiers for tasks, conversations,
// and chat messages.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

// NewIDGenerator returns an IDGenerator backed by random UUIDs.
func NewIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}
