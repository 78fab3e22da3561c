package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name         string
		totalLessons int
		completed    int
		percentage   int
		isComplete   bool
	}{
		{"no lessons completed", 4, 0, 0, false},
		{"half done", 4, 2, 50, false},
		{"two of three rounds up", 3, 2, 67, false},
		{"one of three rounds down", 3, 1, 33, false},
		{"one of eight rounds half up", 8, 1, 13, false},
		{"all done", 3, 3, 100, true},
		{"single lesson course", 1, 1, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.completed)
			for i := range ids {
				ids[i] = "lesson"
			}

			summary := ComputeProgress(tt.totalLessons, ids)
			assert.Equal(t, tt.completed, summary.CompletedCount)
			assert.Equal(t, tt.percentage, summary.Percentage)
			assert.Equal(t, tt.isComplete, summary.IsComplete)
		})
	}
}

func TestComputeProgressEmptyCourseNeverCompletes(t *testing.T) {
	summary := ComputeProgress(0, nil)
	assert.Zero(t, summary.Percentage)
	assert.False(t, summary.IsComplete)
}
