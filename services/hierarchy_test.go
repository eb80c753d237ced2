package services

import (
	"testing"
	"time"

	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
)

func leafWithStatus(id uint, status models.TaskStatus, hours float64) *LeafTask {
	return NewLeafTask(models.Task{
		ID:             id,
		Title:          "leaf",
		Status:         status,
		EstimatedHours: hours,
	})
}

func TestCompositeStatusDerivation(t *testing.T) {
	cases := []struct {
		name     string
		children []models.TaskStatus
		want     models.TaskStatus
	}{
		{"all completed", []models.TaskStatus{models.StatusCompleted, models.StatusCompleted}, models.StatusCompleted},
		{"single completed", []models.TaskStatus{models.StatusCompleted}, models.StatusCompleted},
		{"in progress beats blocked", []models.TaskStatus{models.StatusBlocked, models.StatusInProgress}, models.StatusInProgress},
		{"in progress among completed", []models.TaskStatus{models.StatusCompleted, models.StatusInProgress}, models.StatusInProgress},
		{"blocked without progress", []models.TaskStatus{models.StatusTodo, models.StatusBlocked}, models.StatusBlocked},
		{"blocked among completed", []models.TaskStatus{models.StatusCompleted, models.StatusBlocked}, models.StatusBlocked},
		{"all todo", []models.TaskStatus{models.StatusTodo, models.StatusTodo}, models.StatusTodo},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			comp := NewCompositeTask(models.Task{ID: 1, Status: models.StatusInProgress})
			for i, status := range tc.children {
				comp.AddSubtask(leafWithStatus(uint(i+10), status, 1))
			}
			if got := comp.GetStatus(); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCompositeStatusNoChildrenUsesOwnStatus(t *testing.T) {
	comp := NewCompositeTask(models.Task{ID: 1, Status: models.StatusBlocked})
	if got := comp.GetStatus(); got != models.StatusBlocked {
		t.Fatalf("expected stored status BLOCKED, got %s", got)
	}
}

func TestEffortAdditivityThreeLevels(t *testing.T) {
	left := NewCompositeTask(models.Task{ID: 2})
	left.AddSubtask(leafWithStatus(21, models.StatusTodo, 2))
	left.AddSubtask(leafWithStatus(22, models.StatusTodo, 3))

	right := NewCompositeTask(models.Task{ID: 3})
	right.AddSubtask(leafWithStatus(31, models.StatusTodo, 5))

	root := NewCompositeTask(models.Task{ID: 1})
	root.AddSubtask(left)
	root.AddSubtask(right)

	if got := root.GetEstimatedHours(); got != 10 {
		t.Fatalf("expected root total 10, got %v", got)
	}
	if got := left.GetEstimatedHours(); got != 5 {
		t.Fatalf("expected left total 5, got %v", got)
	}
}

func TestEffortNoChildrenUsesStoredValue(t *testing.T) {
	comp := NewCompositeTask(models.Task{ID: 1, EstimatedHours: 7.5})
	if got := comp.GetEstimatedHours(); got != 7.5 {
		t.Fatalf("expected stored 7.5, got %v", got)
	}
}

func TestSetStatusCascadesToAllDescendants(t *testing.T) {
	inner := NewCompositeTask(models.Task{ID: 2, Status: models.StatusTodo})
	inner.AddSubtask(leafWithStatus(21, models.StatusTodo, 1))
	inner.AddSubtask(leafWithStatus(22, models.StatusBlocked, 1))

	root := NewCompositeTask(models.Task{ID: 1, Status: models.StatusTodo})
	root.AddSubtask(inner)
	root.AddSubtask(leafWithStatus(11, models.StatusInProgress, 1))

	root.SetStatus(models.StatusCompleted)

	if got := root.GetStatus(); got != models.StatusCompleted {
		t.Fatalf("expected derived COMPLETED after cascade, got %s", got)
	}
	for _, child := range root.Children() {
		if got := child.GetStatus(); got != models.StatusCompleted {
			t.Fatalf("child %d reports %s after cascade", child.ID(), got)
		}
	}
	for _, child := range inner.Children() {
		if got := child.GetStatus(); got != models.StatusCompleted {
			t.Fatalf("grandchild %d reports %s after cascade", child.ID(), got)
		}
	}
}

func TestSerializationAsymmetry(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	root := NewCompositeTask(models.Task{
		ID:             1,
		Title:          "root",
		Description:    "root task",
		DueDate:        &due,
		Priority:       models.PriorityHigh,
		Status:         models.StatusTodo,
		EstimatedHours: 8,
	})
	root.AddSubtask(NewLeafTask(models.Task{
		ID:          5,
		Title:       "sub",
		Description: "child task",
		Status:      models.StatusInProgress,
	}))

	out := root.Serialize()

	if out.ID != 1 || out.Title != "root" || out.Priority != models.PriorityHigh || out.EstimatedHours != 8 {
		t.Fatalf("root serialization lost fields: %+v", out)
	}
	if len(out.Subtasks) != 1 {
		t.Fatalf("expected 1 serialized subtask, got %d", len(out.Subtasks))
	}

	sub := out.Subtasks[0]
	if sub.ID != 5 || sub.Title != "sub" || sub.Description != "child task" {
		t.Fatalf("subtask projection wrong: %+v", sub)
	}
	if sub.Status != models.StatusInProgress {
		t.Fatalf("expected subtask status IN_PROGRESS, got %s", sub.Status)
	}
	if sub.TaskID != 1 {
		t.Fatalf("expected parent back-reference 1, got %d", sub.TaskID)
	}
}

func TestLeafSerializeIsDefensiveCopy(t *testing.T) {
	leaf := NewLeafTask(models.Task{ID: 9, Title: "original"})
	out := leaf.Serialize()
	out.Title = "mutated"

	if got := leaf.Serialize().Title; got != "original" {
		t.Fatalf("internal state mutated through serialized copy: %q", got)
	}
}

func TestNewCompositeFromTaskSplitsEffortAndInherits(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	task := models.Task{
		ID:             1,
		Priority:       models.PriorityCritical,
		DueDate:        &due,
		EstimatedHours: 10,
		Subtasks: []models.Subtask{
			{ID: 11, Title: "a", Status: models.StatusTodo, TaskID: 1},
			{ID: 12, Title: "b", Status: models.StatusTodo, TaskID: 1},
			{ID: 13, Title: "c", Status: models.StatusTodo, TaskID: 1},
			{ID: 14, Title: "d", Status: models.StatusTodo, TaskID: 1},
		},
	}

	comp := NewCompositeFromTask(task)

	children := comp.Children()
	if len(children) != 4 {
		t.Fatalf("expected 4 children, got %d", len(children))
	}
	for _, child := range children {
		if got := child.GetEstimatedHours(); got != 2.5 {
			t.Fatalf("expected even split 2.5, got %v", got)
		}
		rec := child.Serialize()
		if rec.Priority != models.PriorityCritical {
			t.Fatalf("expected inherited priority, got %s", rec.Priority)
		}
		if rec.DueDate == nil || !rec.DueDate.Equal(due) {
			t.Fatalf("expected inherited due date, got %v", rec.DueDate)
		}
	}
	if got := comp.GetEstimatedHours(); got != 10 {
		t.Fatalf("expected aggregate 10, got %v", got)
	}
}

func TestAddSubtaskDoesNotResplitSiblings(t *testing.T) {
	task := models.Task{
		ID:             1,
		EstimatedHours: 6,
		Subtasks: []models.Subtask{
			{ID: 11, TaskID: 1},
			{ID: 12, TaskID: 1},
		},
	}
	comp := NewCompositeFromTask(task)

	comp.AddSubtask(leafWithStatus(13, models.StatusTodo, 4))

	// The original children keep their construction-time share of 3 each.
	for _, child := range comp.Children()[:2] {
		if got := child.GetEstimatedHours(); got != 3 {
			t.Fatalf("expected sibling share to stay 3, got %v", got)
		}
	}
	if got := comp.GetEstimatedHours(); got != 10 {
		t.Fatalf("expected total 10 after append, got %v", got)
	}
}

func TestRemoveSubtask(t *testing.T) {
	comp := NewCompositeTask(models.Task{ID: 1})
	comp.AddSubtask(leafWithStatus(11, models.StatusTodo, 1))
	comp.AddSubtask(leafWithStatus(12, models.StatusTodo, 2))

	comp.RemoveSubtask(11)
	if len(comp.Children()) != 1 || comp.Children()[0].ID() != 12 {
		t.Fatalf("expected only child 12 after removal")
	}

	// Unknown id is a no-op.
	comp.RemoveSubtask(99)
	if len(comp.Children()) != 1 {
		t.Fatalf("removing unknown id must not change children")
	}
}

func TestCompositeToLeafTransition(t *testing.T) {
	comp := NewCompositeTask(models.Task{ID: 1, Status: models.StatusTodo, EstimatedHours: 4})
	comp.AddSubtask(leafWithStatus(11, models.StatusCompleted, 1))

	comp.RemoveSubtask(11)

	// With no children left, stored values are authoritative again.
	if got := comp.GetStatus(); got != models.StatusTodo {
		t.Fatalf("expected stored TODO after removing all children, got %s", got)
	}
	if got := comp.GetEstimatedHours(); got != 4 {
		t.Fatalf("expected stored hours 4, got %v", got)
	}
}
