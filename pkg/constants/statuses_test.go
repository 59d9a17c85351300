package constants

import (
	"testing"

	apperrors "gym-admin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTicketStatus(t *testing.T) {
	s, err := ParseTicketStatus(" in_progress ")
	require.NoError(t, err)
	assert.Equal(t, TicketInProgress, s)

	_, err = ParseTicketStatus("DONE")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "DONE")
}

func TestParseEnums_AllKnownValuesRoundTrip(t *testing.T) {
	cases := map[string]struct {
		parse  func(string) (string, error)
		values []string
	}{
		"equipment":   {ParseEquipmentStatus, EquipmentStatuses},
		"maintenance": {ParseMaintenanceStatus, MaintenanceStatuses},
		"priority":    {ParseTicketPriority, TicketPriorities},
		"role":        {ParseStaffRole, StaffRoles},
	}
	for name, tc := range cases {
		for _, v := range tc.values {
			got, err := tc.parse(v)
			require.NoError(t, err, name)
			assert.Equal(t, v, got, name)
		}
		_, err := tc.parse("")
		assert.True(t, apperrors.IsInvalidInput(err), name)
	}
}
