package audit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToModel(t *testing.T) {
	m := toModel(Event{
		UserID:   "u1",
		Action:   "crm_stage_changed",
		Entity:   "crm_pipeline",
		EntityID: "r1",
		Metadata: map[string]string{"from": "new", "to": "won"},
	})

	require.Equal(t, "u1", *m.UserID)
	require.Equal(t, "r1", *m.EntityID)
	require.JSONEq(t, `{"from":"new","to":"won"}`, m.Metadata)

	anon := toModel(Event{Action: "lead_captured"})
	require.Nil(t, anon.UserID)
	require.Nil(t, anon.EntityID)
	require.Empty(t, anon.Metadata)
}
