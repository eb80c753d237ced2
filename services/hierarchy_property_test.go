package services

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
)

func genStatus(t *rapid.T) models.TaskStatus {
	statuses := []models.TaskStatus{
		models.StatusTodo, models.StatusInProgress,
		models.StatusBlocked, models.StatusCompleted,
	}
	return statuses[rapid.IntRange(0, len(statuses)-1).Draw(t, "statusIdx")]
}

// genTree builds a random tree up to the given depth and returns it together
// with the hours and statuses of every leaf it contains.
func genTree(t *rapid.T, nextID *uint, depth int, leafHours *[]float64, leafStatuses *[]models.TaskStatus) TaskComponent {
	*nextID++
	makeLeaf := depth <= 0 || rapid.Bool().Draw(t, "isLeaf")
	if makeLeaf {
		hours := float64(rapid.IntRange(0, 40).Draw(t, "hours")) / 4
		status := genStatus(t)
		*leafHours = append(*leafHours, hours)
		*leafStatuses = append(*leafStatuses, status)
		return NewLeafTask(models.Task{ID: *nextID, Status: status, EstimatedHours: hours})
	}

	comp := NewCompositeTask(models.Task{ID: *nextID, Status: genStatus(t)})
	n := rapid.IntRange(1, 4).Draw(t, "children")
	for i := 0; i < n; i++ {
		comp.AddSubtask(genTree(t, nextID, depth-1, leafHours, leafStatuses))
	}
	return comp
}

func TestEffortAdditivityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var nextID uint
		var leafHours []float64
		var leafStatuses []models.TaskStatus
		tree := genTree(t, &nextID, 3, &leafHours, &leafStatuses)

		// Every generated composite has at least one child, so the total is
		// always the sum over the leaves.
		var want float64
		for _, h := range leafHours {
			want += h
		}
		if got := tree.GetEstimatedHours(); got != want {
			t.Fatalf("expected leaf sum %v, got %v", want, got)
		}
	})
}

func TestCascadeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var nextID uint
		var leafHours []float64
		var leafStatuses []models.TaskStatus
		tree := genTree(t, &nextID, 3, &leafHours, &leafStatuses)

		forced := genStatus(t)
		tree.SetStatus(forced)

		var check func(c TaskComponent)
		check = func(c TaskComponent) {
			if got := c.GetStatus(); got != forced {
				t.Fatalf("component %d reports %s after cascade of %s", c.ID(), got, forced)
			}
			if comp, ok := c.(*CompositeTask); ok {
				for _, child := range comp.Children() {
					check(child)
				}
			}
		}
		check(tree)
	})
}

func TestStatusDerivationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		comp := NewCompositeTask(models.Task{ID: 1, Status: models.StatusTodo})

		allCompleted := true
		anyInProgress := false
		anyBlocked := false
		for i := 0; i < n; i++ {
			status := genStatus(t)
			comp.AddSubtask(NewLeafTask(models.Task{ID: uint(i + 2), Status: status}))
			switch status {
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

		want := models.StatusTodo
		switch {
		case allCompleted:
			want = models.StatusCompleted
		case anyInProgress:
			want = models.StatusInProgress
		case anyBlocked:
			want = models.StatusBlocked
		}

		if got := comp.GetStatus(); got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	})
}
