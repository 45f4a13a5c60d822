package reminder

import (
	"time"

	"glimmer/internal/model"
	"glimmer/internal/timeutil"
)

// SentStatus is the per-channel same-day dedup state read from the ledger.
type SentStatus struct {
	Self    bool
	Contact bool
}

// Intent is a decision to dispatch one reminder channel for a user.
type Intent struct {
	Channel   string
	DaysSince int
}

// Evaluate decides, per channel, whether a reminder is due today. Pure: the
// caller supplies the last check-in day (nil when the user never checked in),
// today's sent status and the current calendar day. All comparisons go through
// timeutil; the inactivity boundary is inclusive, so exactly N days of silence
// already triggers an N-day threshold.
func Evaluate(u *model.User, lastDay *time.Time, sent SentStatus, today time.Time) []Intent {
	rs := u.ReminderSettings
	if rs == nil || !rs.Enabled {
		return nil
	}

	var intents []Intent

	if rs.SelfReminderEnabled && !sent.Self && u.Email != "" {
		if due, days := channelDue(lastDay, today, rs.SelfReminderDays); due {
			intents = append(intents, Intent{Channel: model.ReminderTypeSelf, DaysSince: days})
		}
	}

	if rs.ContactReminderEnabled && !sent.Contact && hasEnabledContact(u) {
		if due, days := channelDue(lastDay, today, rs.ContactReminderDays); due {
			intents = append(intents, Intent{Channel: model.ReminderTypeContact, DaysSince: days})
		}
	}

	return intents
}

// channelDue reports whether the inactivity gap reached thresholdDays, and the
// day count to render. A user with no check-in at all is always due and shown
// the threshold itself until a real check-in exists.
func channelDue(lastDay *time.Time, today time.Time, thresholdDays int) (bool, int) {
	if lastDay == nil {
		return true, thresholdDays
	}
	cutoff := timeutil.AddDays(today, -thresholdDays)
	if timeutil.NormalizeToUTCDate(*lastDay).After(cutoff) {
		return false, 0
	}
	return true, timeutil.DaysBetween(*lastDay, today)
}

func hasEnabledContact(u *model.User) bool {
	for _, c := range u.EmergencyContacts {
		if c.Enabled {
			return true
		}
	}
	return false
}
