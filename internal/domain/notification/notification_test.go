package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelFor(t *testing.T) {
	assert.Equal(t, ChannelArrangerPortal, ChannelFor(AudienceArranger))
	assert.Equal(t, ChannelPartyPortal, ChannelFor(AudienceParty))
	assert.Equal(t, ChannelStaffInbox, ChannelFor(AudienceExecutive))
	assert.Equal(t, ChannelStaffInbox, ChannelFor(AudienceSigner))
}

func TestNew(t *testing.T) {
	n, err := New(uuid.New(), AudienceParty, uuid.New(), "Commission paid", "body", "party_commission", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ChannelPartyPortal, n.Channel)
	assert.NotEqual(t, uuid.Nil, n.ID)

	_, err = New(uuid.New(), AudienceParty, uuid.Nil, "s", "", "", uuid.Nil)
	assert.Error(t, err)
	_, err = New(uuid.New(), AudienceParty, uuid.New(), "", "", "", uuid.Nil)
	assert.Error(t, err)
}
