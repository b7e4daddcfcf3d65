package learningpath

import (
	"fmt"
	"math"

	"github.com/trezcool/autolearn/core/milestone"
)

const daysPerWeek = 7

func milestoneTitle(day int) string {
	return fmt.Sprintf("Day %d: Learning Goals", day)
}

func milestoneDescription(day int) string {
	return fmt.Sprintf("Complete daily learning objectives for day %d", day)
}

// ExpandMilestones returns one incomplete Milestone per day, numbered 1..totalDays.
// It returns nothing when totalDays <= 0.
func ExpandMilestones(pathID int64, totalDays int) []milestone.Milestone {
	if totalDays <= 0 {
		return nil
	}
	milestones := make([]milestone.Milestone, 0, totalDays)
	for day := 1; day <= totalDays; day++ {
		milestones = append(milestones, milestone.Milestone{
			LearningPathID: pathID,
			DayNumber:      day,
			Title:          milestoneTitle(day),
			Description:    milestoneDescription(day),
		})
	}
	return milestones
}

// ComputeProgress summarizes the completion of milestones.
// The current week is the week of the next day to complete.
func ComputeProgress(pathID int64, milestones []milestone.Milestone) Progress {
	prog := Progress{LearningPathID: pathID, TotalMilestones: len(milestones)}
	for _, m := range milestones {
		if m.IsCompleted {
			prog.CompletedMilestones++
		}
	}
	if prog.TotalMilestones > 0 {
		pct := float64(prog.CompletedMilestones) / float64(prog.TotalMilestones) * 100
		prog.Percentage = int(math.Round(pct))
	}
	prog.CurrentWeek = (prog.CompletedMilestones + daysPerWeek) / daysPerWeek
	return prog
}
