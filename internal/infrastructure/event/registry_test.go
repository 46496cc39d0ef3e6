package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewHandlerRegistry()
	h := newRecordingHandler("InvoiceSent", "InvoicePaid")
	r.Register(h, h.EventTypes()...)

	assert.Len(t, r.HandlersFor("InvoiceSent"), 1)
	assert.Len(t, r.HandlersFor("InvoicePaid"), 1)
	assert.Empty(t, r.HandlersFor("InvoiceOverdue"))
}

func TestRegistryWildcard(t *testing.T) {
	r := NewHandlerRegistry()
	wildcard := newRecordingHandler()
	specific := newRecordingHandler("TopicReplied")
	r.Register(wildcard)
	r.Register(specific, "TopicReplied")

	assert.Len(t, r.HandlersFor("TopicReplied"), 2)
	assert.Len(t, r.HandlersFor("anything"), 1)
}

func TestRegistryUnregister(t *testing.T) {
	r := NewHandlerRegistry()
	a := newRecordingHandler("MatterShared")
	b := newRecordingHandler("MatterShared")
	r.Register(a, "MatterShared")
	r.Register(b, "MatterShared")

	r.Unregister(a)

	handlers := r.HandlersFor("MatterShared")
	assert.Len(t, handlers, 1)
	assert.Same(t, b, handlers[0])
}
