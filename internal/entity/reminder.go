package entity

// Reminder represents a follow-up reminder. A conversation holds at most one
// active reminder.
type Reminder struct {
	Id             string `json:"id" gorm:"column:id;primaryKey"`
	ConversationId int64  `json:"conversation_id" gorm:"column:conversation_id;uniqueIndex"`
	RemindAt       int64  `json:"remind_at" gorm:"column:remind_at"`
	Note           string `json:"note" gorm:"column:note"`
	Handled        bool   `json:"handled" gorm:"column:handled"`
	CreatedAt      int64  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      int64  `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for Reminder
func (Reminder) TableName() string {
	return "reminders"
}

// IsTriggered reports whether the reminder is due. Derived, never stored:
// trigger time has passed and the reminder was not handled.
func (r *Reminder) IsTriggered(now int64) bool {
	return r.RemindAt <= now && !r.Handled
}

// ReminderInfo represents reminder info for API responses
type ReminderInfo struct {
	Id        string `json:"id"`
	RemindAt  int64  `json:"remindAt"`
	Note      string `json:"note,omitempty"`
	Handled   bool   `json:"handled"`
	Triggered bool   `json:"triggered"`
}

// ToReminderInfo converts Reminder to ReminderInfo, deriving Triggered at now
func (r *Reminder) ToReminderInfo(now int64) *ReminderInfo {
	return &ReminderInfo{
		Id:        r.Id,
		RemindAt:  r.RemindAt,
		Note:      r.Note,
		Handled:   r.Handled,
		Triggered: r.IsTriggered(now),
	}
}
