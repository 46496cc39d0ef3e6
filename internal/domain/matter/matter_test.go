package matter

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
)

func newTestMatter(t *testing.T) *Matter {
	t.Helper()
	m, err := NewMatter(
		"MAT-2026-00042",
		uuid.New(),
		uuid.New(),
		"Lease dispute mediation",
		"Commercial lease disagreement between landlord and tenant",
		RateTypeHourly,
		valueobject.NewMoneyUSDFromFloat(350),
	)
	require.NoError(t, err)
	m.ClearDomainEvents()
	return m
}

func TestNewMatter(t *testing.T) {
	t.Run("creates draft matter", func(t *testing.T) {
		mediatorID := uuid.New()
		clientID := uuid.New()
		m, err := NewMatter("MAT-2026-00001", mediatorID, clientID, "Title", "Desc", RateTypeFixed, valueobject.NewMoneyUSDFromFloat(5000))
		require.NoError(t, err)
		assert.Equal(t, MatterStatusDraft, m.Status)
		assert.Equal(t, mediatorID, m.MediatorID)
		assert.Nil(t, m.OpenedAt)
		require.Len(t, m.GetDomainEvents(), 1)
		assert.Equal(t, "MatterCreated", m.GetDomainEvents()[0].EventType())
	})

	t.Run("requires MAT- prefix", func(t *testing.T) {
		_, err := NewMatter("2026-00001", uuid.New(), uuid.New(), "Title", "", RateTypeHourly, valueobject.ZeroUSD())
		assert.Error(t, err)
	})

	t.Run("rejects same mediator and client", func(t *testing.T) {
		id := uuid.New()
		_, err := NewMatter("MAT-1", id, id, "Title", "", RateTypeHourly, valueobject.ZeroUSD())
		assert.Error(t, err)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := NewMatter("MAT-1", uuid.New(), uuid.New(), "Title", "", RateTypeHourly, valueobject.NewMoneyUSDFromFloat(-1))
		assert.Error(t, err)
	})
}

func TestMatterOpenClose(t *testing.T) {
	t.Run("open stamps OpenedAt", func(t *testing.T) {
		m := newTestMatter(t)
		require.NoError(t, m.Open())
		assert.Equal(t, MatterStatusOpen, m.Status)
		assert.NotNil(t, m.OpenedAt)
		require.Len(t, m.GetDomainEvents(), 1)
		assert.Equal(t, "MatterOpened", m.GetDomainEvents()[0].EventType())
	})

	t.Run("cannot open twice", func(t *testing.T) {
		m := newTestMatter(t)
		require.NoError(t, m.Open())
		assert.Error(t, m.Open())
	})

	t.Run("close requires open status and a reason", func(t *testing.T) {
		m := newTestMatter(t)
		assert.Error(t, m.Close("settled")) // still draft

		require.NoError(t, m.Open())
		assert.Error(t, m.Close(""))
		require.NoError(t, m.Close("settled"))
		assert.Equal(t, MatterStatusClosed, m.Status)
		assert.NotNil(t, m.ClosedAt)
	})

	t.Run("closed is terminal", func(t *testing.T) {
		m := newTestMatter(t)
		require.NoError(t, m.Open())
		require.NoError(t, m.Close("settled"))
		assert.Error(t, m.Open())
		assert.Error(t, m.UpdateDetails("new title", ""))
		assert.Error(t, m.ShareWith(uuid.New()))
	})
}

func TestMatterReferral(t *testing.T) {
	t.Run("send referral moves matter to referral status", func(t *testing.T) {
		m := newTestMatter(t)
		require.NoError(t, m.Open())
		m.ClearDomainEvents()

		target := uuid.New()
		r, err := m.SendReferral(m.MediatorID, target, "better fit for family law")
		require.NoError(t, err)
		assert.Equal(t, MatterStatusReferral, m.Status)
		assert.Equal(t, ReferralStatusPending, r.Status)
		assert.Equal(t, target, r.ToMediatorID)
		require.Len(t, m.GetDomainEvents(), 1)
		assert.Equal(t, "MatterReferralSent", m.GetDomainEvents()[0].EventType())
	})

	t.Run("only current mediator can refer", func(t *testing.T) {
		m := newTestMatter(t)
		require.NoError(t, m.Open())
		_, err := m.SendReferral(uuid.New(), uuid.New(), "")
		assert.Error(t, err)
	})

	t.Run("cannot refer to self", func(t *testing.T) {
		m := newTestMatter(t)
		require.NoError(t, m.Open())
		_, err := m.SendReferral(m.MediatorID, m.MediatorID, "")
		assert.Error(t, err)
	})

	t.Run("cannot refer draft matter", func(t *testing.T) {
		m := newTestMatter(t)
		_, err := m.SendReferral(m.MediatorID, uuid.New(), "")
		assert.Error(t, err)
	})

	t.Run("accept reassigns mediator and reopens", func(t *testing.T) {
		m := newTestMatter(t)
		require.NoError(t, m.Open())
		original := m.MediatorID
		target := uuid.New()
		r, err := m.SendReferral(m.MediatorID, target, "")
		require.NoError(t, err)
		m.ClearDomainEvents()

		require.NoError(t, m.AcceptReferral(r))
		assert.Equal(t, MatterStatusOpen, m.Status)
		assert.Equal(t, target, m.MediatorID)
		assert.NotEqual(t, original, m.MediatorID)
		assert.Equal(t, ReferralStatusAccepted, r.Status)
		assert.NotNil(t, r.ResolvedAt)
	})

	t.Run("decline keeps mediator and reopens", func(t *testing.T) {
		m := newTestMatter(t)
		require.NoError(t, m.Open())
		original := m.MediatorID
		r, err := m.SendReferral(m.MediatorID, uuid.New(), "")
		require.NoError(t, err)

		require.NoError(t, m.DeclineReferral(r))
		assert.Equal(t, MatterStatusOpen, m.Status)
		assert.Equal(t, original, m.MediatorID)
		assert.Equal(t, ReferralStatusDeclined, r.Status)
	})

	t.Run("cannot resolve referral twice", func(t *testing.T) {
		m := newTestMatter(t)
		require.NoError(t, m.Open())
		r, err := m.SendReferral(m.MediatorID, uuid.New(), "")
		require.NoError(t, err)

		require.NoError(t, m.AcceptReferral(r))
		assert.Error(t, m.AcceptReferral(r))
		assert.Error(t, r.Decline())
	})

	t.Run("referral from another matter is rejected", func(t *testing.T) {
		m := newTestMatter(t)
		require.NoError(t, m.Open())
		_, err := m.SendReferral(m.MediatorID, uuid.New(), "")
		require.NoError(t, err)

		stray, err := NewReferral(uuid.New(), uuid.New(), uuid.New(), "")
		require.NoError(t, err)
		assert.Error(t, m.AcceptReferral(stray))
	})
}

func TestMatterSharing(t *testing.T) {
	t.Run("share and unshare", func(t *testing.T) {
		m := newTestMatter(t)
		other := uuid.New()
		require.NoError(t, m.ShareWith(other))
		assert.True(t, m.IsAccessibleBy(other))
		assert.Error(t, m.ShareWith(other)) // duplicate

		require.NoError(t, m.Unshare(other))
		assert.False(t, m.IsAccessibleBy(other))
		assert.Error(t, m.Unshare(other))
	})

	t.Run("parties already have access", func(t *testing.T) {
		m := newTestMatter(t)
		assert.Error(t, m.ShareWith(m.ClientID))
		assert.True(t, m.IsAccessibleBy(m.MediatorID))
		assert.True(t, m.IsAccessibleBy(m.ClientID))
		assert.False(t, m.IsAccessibleBy(uuid.New()))
	})
}
