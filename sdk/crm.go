package sdk

import "context"

// CreateTag creates a tag with a unique name
func (c *Client) CreateTag(ctx context.Context, name, color string) (*TagInfo, error) {
	var result TagInfo
	body := map[string]string{"name": name, "color": color}
	if err := c.post(ctx, "/tags", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTags returns all tags
func (c *Client) ListTags(ctx context.Context) ([]*TagInfo, error) {
	var result []*TagInfo
	if err := c.get(ctx, "/tags", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteTag removes a tag and all its assignments
func (c *Client) DeleteTag(ctx context.Context, tagId string) error {
	return c.delete(ctx, "/tags/"+tagId, nil)
}

// AssignTag attaches a tag to a conversation
func (c *Client) AssignTag(ctx context.Context, threadId, tagId string) error {
	body := map[string]string{"tagId": tagId}
	return c.post(ctx, "/conversations/"+threadId+"/tags", body, nil)
}

// UnassignTag detaches a tag from a conversation
func (c *Client) UnassignTag(ctx context.Context, threadId, tagId string) error {
	return c.delete(ctx, "/conversations/"+threadId+"/tags/"+tagId, nil)
}

// SetNote sets or clears a conversation's note
func (c *Client) SetNote(ctx context.Context, threadId, note string) error {
	body := map[string]string{"note": note}
	return c.put(ctx, "/conversations/"+threadId+"/note", body, nil)
}

// SetStarred stars or unstars a conversation
func (c *Client) SetStarred(ctx context.Context, threadId string, starred bool) error {
	body := map[string]bool{"starred": starred}
	return c.post(ctx, "/conversations/"+threadId+"/star", body, nil)
}

// MarkConversationRead clears a conversation's unread state
func (c *Client) MarkConversationRead(ctx context.Context, threadId string) error {
	return c.post(ctx, "/conversations/"+threadId+"/read", nil, nil)
}

// SetReminder creates or replaces a conversation's reminder
func (c *Client) SetReminder(ctx context.Context, threadId string, remindAt int64, note string) (*ReminderInfo, error) {
	var result ReminderInfo
	body := map[string]interface{}{"remindAt": remindAt, "note": note}
	if err := c.post(ctx, "/conversations/"+threadId+"/reminder", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListReminders returns all reminders with their conversations
func (c *Client) ListReminders(ctx context.Context) ([]*ReminderListItem, error) {
	var result []*ReminderListItem
	if err := c.get(ctx, "/reminders", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkReminderHandled flags a reminder as dealt with
func (c *Client) MarkReminderHandled(ctx context.Context, reminderId string) error {
	return c.post(ctx, "/reminders/"+reminderId+"/handled", nil, nil)
}

// DeleteReminder removes a reminder
func (c *Client) DeleteReminder(ctx context.Context, reminderId string) error {
	return c.delete(ctx, "/reminders/"+reminderId, nil)
}
