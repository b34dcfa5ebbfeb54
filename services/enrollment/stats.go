package enrollment

import (
	"sort"
	"time"

	roadmapModels "lms/models/roadmap"
)

// LearningStreak returns the user's consecutive-day completion streak, walked
// backward from today. A day counts when at least one lesson was completed on
// it; the walk stops at the first gap of more than one day. Recomputed from
// the progress rows on every call, nothing is cached.
func (s *Service) LearningStreak(userID uint) (int, error) {
	var timestamps []time.Time
	err := s.db.Model(&roadmapModels.LessonProgress{}).
		Where("user_id = ? AND is_completed = ? AND completed_at IS NOT NULL", userID, true).
		Pluck("completed_at", &timestamps).Error
	if err != nil {
		return 0, err
	}

	return streakFromTimestamps(timestamps, time.Now()), nil
}

// streakFromTimestamps truncates completion timestamps to day granularity,
// dedupes same-day completions and counts backward from "now" with a maximum
// allowed gap of one day.
func streakFromTimestamps(timestamps []time.Time, now time.Time) int {
	if len(timestamps) == 0 {
		return 0
	}

	seen := make(map[time.Time]bool, len(timestamps))
	days := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		day := truncateToDay(ts)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	// The streak is alive only if the latest completion was today or yesterday
	today := truncateToDay(now)
	if dayGap(today, days[0]) > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if dayGap(days[i-1], days[i]) > 1 {
			break
		}
		streak++
	}

	return streak
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dayGap returns the whole days between two midnight-truncated times, a >= b.
func dayGap(a, b time.Time) int {
	return int(a.Sub(b).Hours() / 24)
}

// RoadmapCompletionRate returns the share of the roadmap's enrollments that
// are completed, as a percentage. Zero enrollments yields 0.
func (s *Service) RoadmapCompletionRate(roadmapID uint) (float64, error) {
	var total int64
	err := s.db.Model(&roadmapModels.Enrollment{}).
		Where("roadmap_id = ?", roadmapID).Count(&total).Error
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	var completed int64
	err = s.db.Model(&roadmapModels.Enrollment{}).
		Where("roadmap_id = ? AND is_completed = ?", roadmapID, true).Count(&completed).Error
	if err != nil {
		return 0, err
	}

	return float64(completed) / float64(total) * 100, nil
}

// UserStats aggregates the user's enrollments: totals, completion rate, mean
// average-score over scored enrollments and the top 5 categories by
// enrollment count.
func (s *Service) UserStats(userID uint) (*UserStats, error) {
	var enrollments []roadmapModels.Enrollment
	if err := s.db.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return nil, err
	}

	stats := &UserStats{
		FavoriteCategories: make([]CategoryCount, 0, 5),
	}
	stats.TotalEnrollments = len(enrollments)

	scoreSum := 0.0
	scored := 0
	for _, enr := range enrollments {
		if enr.IsCompleted {
			stats.TotalCompletions++
		}
		if enr.AverageScore > 0 {
			scoreSum += enr.AverageScore
			scored++
		}
	}
	if scored > 0 {
		stats.AverageScore = scoreSum / float64(scored)
	}
	if stats.TotalEnrollments > 0 {
		stats.CompletionRate = float64(stats.TotalCompletions) / float64(stats.TotalEnrollments) * 100
	}

	var rows []struct {
		Category string
		Cnt      int
	}
	err := s.db.Model(&roadmapModels.Enrollment{}).
		Select("categories.name AS category, COUNT(*) AS cnt").
		Joins("JOIN roadmaps ON roadmaps.id = enrollments.roadmap_id").
		Joins("JOIN categories ON categories.id = roadmaps.category_id").
		Where("enrollments.user_id = ?", userID).
		Group("categories.name").
		Order("cnt DESC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats.FavoriteCategories = append(stats.FavoriteCategories, CategoryCount{
			Category: row.Category,
			Count:    row.Cnt,
		})
	}

	return stats, nil
}
