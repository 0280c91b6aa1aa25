package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReminderIsTriggered(t *testing.T) {
	cases := []struct {
		name     string
		remindAt int64
		handled  bool
		now      int64
		want     bool
	}{
		{"due and unhandled", 1000, false, 2000, true},
		{"due exactly now", 2000, false, 2000, true},
		{"not yet due", 3000, false, 2000, false},
		{"due but handled", 1000, true, 2000, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rem := &Reminder{RemindAt: tc.remindAt, Handled: tc.handled}
			assert.Equal(t, tc.want, rem.IsTriggered(tc.now))
		})
	}
}

func TestToReminderInfoDerivesTriggered(t *testing.T) {
	rem := &Reminder{Id: "r1", RemindAt: 1000, Note: "follow up"}

	info := rem.ToReminderInfo(500)
	assert.False(t, info.Triggered)

	info = rem.ToReminderInfo(1500)
	assert.True(t, info.Triggered)
}
