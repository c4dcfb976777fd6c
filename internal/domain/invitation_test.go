package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvitation_CanTransitionTo(t *testing.T) {
	statuses := []InvitationStatus{
		InvitationPending,
		InvitationRegistered,
		InvitationAttended,
		InvitationCompleted,
		InvitationExpired,
	}

	allowed := map[InvitationStatus][]InvitationStatus{
		InvitationPending:    {InvitationRegistered, InvitationExpired},
		InvitationRegistered: {InvitationAttended, InvitationExpired},
		InvitationAttended:   {InvitationCompleted},
		InvitationCompleted:  {},
		InvitationExpired:    {},
	}

	for from, targets := range allowed {
		inv := Invitation{Status: from}
		legal := make(map[InvitationStatus]bool)
		for _, target := range targets {
			legal[target] = true
		}

		for _, target := range statuses {
			assert.Equal(t, legal[target], inv.CanTransitionTo(target),
				"%v -> %v", from, target)
		}
	}
}

func TestCampaign_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    CampaignStatus
		to      CampaignStatus
		allowed bool
	}{
		{CampaignDraft, CampaignActive, true},
		{CampaignDraft, CampaignPaused, false},
		{CampaignDraft, CampaignCompleted, false},
		{CampaignActive, CampaignPaused, true},
		{CampaignActive, CampaignCompleted, true},
		{CampaignActive, CampaignDraft, false},
		{CampaignPaused, CampaignActive, true},
		{CampaignPaused, CampaignCompleted, true},
		{CampaignCompleted, CampaignActive, false},
		{CampaignCompleted, CampaignPaused, false},
	}

	for _, tc := range cases {
		c := Campaign{Status: tc.from}
		assert.Equal(t, tc.allowed, c.CanTransitionTo(tc.to), "%v -> %v", tc.from, tc.to)
	}
}
