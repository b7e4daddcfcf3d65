package learningpath

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/autolearn/core/milestone"
)

func TestExpandMilestones(t *testing.T) {
	tests := []struct {
		name      string
		totalDays int
		wantLen   int
	}{
		{name: "negative", totalDays: -3, wantLen: 0},
		{name: "zero", totalDays: 0, wantLen: 0},
		{name: "one", totalDays: 1, wantLen: 1},
		{name: "a month", totalDays: 30, wantLen: 30},
		{name: "more than a batch", totalDays: 1200, wantLen: 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandMilestones(7, tt.totalDays)
			if !assert.Len(t, got, tt.wantLen) {
				return
			}
			for i, m := range got {
				day := i + 1
				assert.Equal(t, int64(7), m.LearningPathID)
				assert.Equal(t, day, m.DayNumber)
				assert.Equal(t, milestoneTitle(day), m.Title)
				assert.Equal(t, milestoneDescription(day), m.Description)
				assert.False(t, m.IsCompleted)
				assert.False(t, m.CompletedAt.Valid)
				assert.False(t, m.Notes.Valid)
			}
		})
	}

	assert.Equal(t, "Day 3: Learning Goals", milestoneTitle(3))
	assert.Equal(t, "Complete daily learning objectives for day 3", milestoneDescription(3))
}

func TestComputeProgress(t *testing.T) {
	withCompleted := func(total, completed int) []milestone.Milestone {
		ms := ExpandMilestones(1, total)
		for i := 0; i < completed; i++ {
			ms[i].IsCompleted = true
		}
		return ms
	}

	tests := []struct {
		name       string
		milestones []milestone.Milestone
		want       Progress
	}{
		{name: "no milestones", want: Progress{LearningPathID: 1, CurrentWeek: 1}},
		{
			name: "none completed", milestones: withCompleted(30, 0),
			want: Progress{LearningPathID: 1, TotalMilestones: 30, CurrentWeek: 1},
		},
		{
			name: "first week done", milestones: withCompleted(30, 7),
			want: Progress{LearningPathID: 1, TotalMilestones: 30, CompletedMilestones: 7, Percentage: 23, CurrentWeek: 2},
		},
		{
			name: "rounded", milestones: withCompleted(3, 2),
			want: Progress{LearningPathID: 1, TotalMilestones: 3, CompletedMilestones: 2, Percentage: 67, CurrentWeek: 1},
		},
		{
			name: "all completed", milestones: withCompleted(14, 14),
			want: Progress{LearningPathID: 1, TotalMilestones: 14, CompletedMilestones: 14, Percentage: 100, CurrentWeek: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeProgress(1, tt.milestones))
		})
	}
}
