package model

import "sort"

// CompletionRecord is the set of tasks a user completed on a date.
type CompletionRecord struct {
	UserID  string
	Date    Date
	TaskIDs map[string]struct{}
}

// NewCompletionRecord returns a completion record with the task IDs marked as done.
func NewCompletionRecord(userID string, d Date, taskIDs ...string) CompletionRecord {
	c := CompletionRecord{UserID: userID, Date: d, TaskIDs: make(map[string]struct{}, len(taskIDs))}
	for _, id := range taskIDs {
		c.TaskIDs[id] = struct{}{}
	}
	return c
}

// Has reports whether the task was completed.
func (c CompletionRecord) Has(taskID string) bool {
	_, ok := c.TaskIDs[taskID]
	return ok
}

// Toggle flips the completion of a task and returns the new state.
func (c *CompletionRecord) Toggle(taskID string) bool {
	if c.Has(taskID) {
		delete(c.TaskIDs, taskID)
		return false
	}
	if c.TaskIDs == nil {
		c.TaskIDs = map[string]struct{}{}
	}
	c.TaskIDs[taskID] = struct{}{}
	return true
}

// Remove unmarks a task, it's a noop if the task was not completed.
func (c *CompletionRecord) Remove(taskID string) {
	delete(c.TaskIDs, taskID)
}

// Len returns the number of completed tasks.
func (c CompletionRecord) Len() int { return len(c.TaskIDs) }

// IDs returns the completed task IDs sorted.
func (c CompletionRecord) IDs() []string {
	ids := make([]string, 0, len(c.TaskIDs))
	for id := range c.TaskIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
