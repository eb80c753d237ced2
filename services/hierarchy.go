package services

import (
	"time"

	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
)

// TaskComponent is the shared capability set of a node in a task hierarchy.
// Leaf nodes answer from their stored record; composite nodes derive status
// and effort from their children. All operations are total, in-memory and
// never fail; the record store is trusted to hand over acyclic trees.
//
// A component tree is owned by a single caller at a time. Concurrent
// mutation of the same tree is not coordinated here and must be serialized
// by the owner.
type TaskComponent interface {
	ID() uint
	GetStatus() models.TaskStatus
	SetStatus(status models.TaskStatus)
	GetEstimatedHours() float64
	Serialize() models.Task
}

// LeafTask wraps a task with no children. Status and estimated hours are
// authoritative, not derived.
type LeafTask struct {
	task models.Task
}

func NewLeafTask(task models.Task) *LeafTask {
	task.Subtasks = nil
	return &LeafTask{task: task}
}

func (l *LeafTask) ID() uint { return l.task.ID }

func (l *LeafTask) GetStatus() models.TaskStatus { return l.task.Status }

func (l *LeafTask) SetStatus(status models.TaskStatus) {
	l.task.Status = status
	l.task.UpdatedAt = time.Now().UTC()
}

func (l *LeafTask) GetEstimatedHours() float64 { return l.task.EstimatedHours }

// Serialize returns a shallow copy; callers cannot reach the leaf's internal
// record through the returned value.
func (l *LeafTask) Serialize() models.Task {
	return l.task
}

// CompositeTask wraps a task plus an ordered list of child components, each
// itself a leaf or a composite. The composite owns its children exclusively;
// children hold no back-reference to the parent.
type CompositeTask struct {
	task     models.Task
	children []TaskComponent
}

func NewCompositeTask(task models.Task) *CompositeTask {
	task.Subtasks = nil
	return &CompositeTask{task: task}
}

// NewCompositeFromTask rebuilds a hierarchy from a stored record. Each
// persisted subtask becomes a leaf whose estimated hours are the parent's
// hours split evenly across the children (fractions preserved) and whose due
// date and priority are inherited from the parent, since the stored subtask
// projection carries neither.
func NewCompositeFromTask(task models.Task) *CompositeTask {
	stored := task.Subtasks
	c := NewCompositeTask(task)
	if len(stored) == 0 {
		return c
	}
	share := task.EstimatedHours / float64(len(stored))
	for _, sub := range stored {
		c.children = append(c.children, NewLeafTask(models.Task{
			ID:             sub.ID,
			Title:          sub.Title,
			Description:    sub.Description,
			Status:         sub.Status,
			DueDate:        task.DueDate,
			Priority:       task.Priority,
			EstimatedHours: share,
			CreatedAt:      sub.CreatedAt,
			UpdatedAt:      sub.UpdatedAt,
		}))
	}
	return c
}

func (c *CompositeTask) ID() uint { return c.task.ID }

// AddSubtask appends a child. Effort shares of existing siblings are not
// re-derived; the even split happens only when a hierarchy is rebuilt from
// the store.
func (c *CompositeTask) AddSubtask(component TaskComponent) {
	c.children = append(c.children, component)
}

// RemoveSubtask drops the child with the given id. Unknown ids are a no-op.
func (c *CompositeTask) RemoveSubtask(id uint) {
	for i, child := range c.children {
		if child.ID() == id {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

func (c *CompositeTask) Children() []TaskComponent { return c.children }

// GetStatus derives the composite's status from its children. The rules are
// ordered and the first match wins:
//
//  1. no children: the composite's own stored status
//  2. all children COMPLETED: COMPLETED
//  3. any child IN_PROGRESS: IN_PROGRESS
//  4. any child BLOCKED: BLOCKED
//  5. otherwise: TODO
//
// Completion requires unanimity; progress and blockage are contagious upward.
// IN_PROGRESS is checked before BLOCKED, so a mix of the two reports
// IN_PROGRESS.
func (c *CompositeTask) GetStatus() models.TaskStatus {
	if len(c.children) == 0 {
		return c.task.Status
	}
	allCompleted := true
	anyInProgress := false
	anyBlocked := false
	for _, child := range c.children {
		switch child.GetStatus() {
		case models.StatusCompleted:
		case models.StatusInProgress:
			allCompleted = false
			anyInProgress = true
		case models.StatusBlocked:
			allCompleted = false
			anyBlocked = true
		default:
			allCompleted = false
		}
	}
	switch {
	case allCompleted:
		return models.StatusCompleted
	case anyInProgress:
		return models.StatusInProgress
	case anyBlocked:
		return models.StatusBlocked
	default:
		return models.StatusTodo
	}
}

// SetStatus stores the status on the composite itself and forces the same
// status onto every descendant. This is an explicit cascading override, not
// the inverse of GetStatus: the next derived read still runs the same rules,
// it just sees the rewritten leaf values.
func (c *CompositeTask) SetStatus(status models.TaskStatus) {
	c.task.Status = status
	c.task.UpdatedAt = time.Now().UTC()
	for _, child := range c.children {
		child.SetStatus(status)
	}
}

// GetEstimatedHours sums the children recursively; with no children it falls
// back to the stored value.
func (c *CompositeTask) GetEstimatedHours() float64 {
	if len(c.children) == 0 {
		return c.task.EstimatedHours
	}
	var total float64
	for _, child := range c.children {
		total += child.GetEstimatedHours()
	}
	return total
}

// Serialize produces the persisted shape: the root keeps the full task
// record, while each child collapses to the reduced subtask projection with a
// back-reference to this composite's id. The asymmetry is part of the stored
// record format and must not be "fixed".
func (c *CompositeTask) Serialize() models.Task {
	out := c.task
	out.Subtasks = nil
	for _, child := range c.children {
		rec := child.Serialize()
		out.Subtasks = append(out.Subtasks, models.Subtask{
			ID:          rec.ID,
			Title:       rec.Title,
			Description: rec.Description,
			Status:      child.GetStatus(),
			TaskID:      c.task.ID,
			CreatedAt:   rec.CreatedAt,
			UpdatedAt:   rec.UpdatedAt,
		})
	}
	return out
}
