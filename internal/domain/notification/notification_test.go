package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawmatch/backend/internal/domain/shared"
)

func TestNewNotification(t *testing.T) {
	t.Run("creates unread notification", func(t *testing.T) {
		n, err := NewNotification(uuid.New(), KindInvoiceSent, "Invoice INV-2026-00017", "You have a new invoice for $750.00", shared.JSONMap{"invoice_id": uuid.New().String()})
		require.NoError(t, err)
		assert.False(t, n.Read)
		assert.Nil(t, n.ReadAt)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewNotification(uuid.New(), Kind("SPAM"), "title", "", nil)
		assert.Error(t, err)
	})

	t.Run("nil payload becomes empty map", func(t *testing.T) {
		n, err := NewNotification(uuid.New(), KindTopicReplied, "New reply", "", nil)
		require.NoError(t, err)
		assert.NotNil(t, n.Payload)
	})
}

func TestNotificationMarkRead(t *testing.T) {
	n, err := NewNotification(uuid.New(), KindProposalAccepted, "Proposal accepted", "", nil)
	require.NoError(t, err)

	n.MarkRead()
	assert.True(t, n.Read)
	require.NotNil(t, n.ReadAt)
	firstRead := *n.ReadAt
	version := n.GetVersion()

	// second read is a no-op
	n.MarkRead()
	assert.Equal(t, firstRead, *n.ReadAt)
	assert.Equal(t, version, n.GetVersion())
}

func TestDispatch(t *testing.T) {
	t.Run("lifecycle", func(t *testing.T) {
		d, err := NewDispatch(uuid.New(), ChannelEmail)
		require.NoError(t, err)
		assert.Equal(t, DispatchStatusPending, d.Status)

		d.MarkFailed("smtp timeout")
		assert.Equal(t, DispatchStatusFailed, d.Status)
		assert.Equal(t, "smtp timeout", d.Error)

		d.MarkSent()
		assert.Equal(t, DispatchStatusSent, d.Status)
		assert.Empty(t, d.Error)
		assert.NotNil(t, d.SentAt)
	})

	t.Run("rejects invalid channel", func(t *testing.T) {
		_, err := NewDispatch(uuid.New(), Channel("SMS"))
		assert.Error(t, err)
	})
}
