package service

import "math"

// Task represents a single to-do item.
type Task struct {
	ID          int
	Description string
	Done        bool
}

// NextID returns the id the next added task receives: max existing id + 1.
// Ids of removed tasks above the remaining maximum are handed out again.
// Returns ErrIDsExhausted when the maximum id is already math.MaxInt.
func NextID(tasks []Task) (int, error) {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	if maxID == math.MaxInt {
		return 0, ErrIDsExhausted
	}
	return maxID + 1, nil
}

// IndexOf returns the position of the first task with the given id, or -1.
func IndexOf(tasks []Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
