// Package missions управляет наградами за миссии сообщества.
// models.go содержит справочники наград.
package missions

// DailyRewards — ежедневные миссии и их награды в кредитах.
var DailyRewards = map[string]int64{
	"post_activity":         20,
	"help_someone":          10,
	"react_announcement":    5,
	"invite_user":           30,
	"give_review":           15,
	"join_vc":               10,
	"complete_verification": 50,
}

// WeeklyRewards — еженедельные миссии и их награды в кредитах.
var WeeklyRewards = map[string]int64{
	"top_contributor": 100,
	"top_reviewer":    80,
	"most_helpful":    200,
}

// Reward возвращает награду миссии. Сначала ищем среди ежедневных,
// затем среди еженедельных.
func Reward(missionID string) (int64, bool) {
	if reward, ok := DailyRewards[missionID]; ok {
		return reward, true
	}
	if reward, ok := WeeklyRewards[missionID]; ok {
		return reward, true
	}
	return 0, false
}
