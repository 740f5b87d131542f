package types

import "strings"

type Category string

const (
	CategoryAds      Category = "ads"
	CategoryReferral Category = "referral"
	CategoryFollow   Category = "follow"
	CategoryShorten  Category = "shorten"
	CategoryOther    Category = "other"
)

// CategoryOf prefers the server-supplied category. The id-substring grouping is
// deprecated and only applied when legacyFallback is set.
func CategoryOf(task *Task, legacyFallback bool) Category {
	if task.Category != "" {
		return Category(task.Category)
	}
	if !legacyFallback {
		return CategoryOther
	}
	id := strings.ToLower(task.ID)
	switch {
	case strings.Contains(id, "ads") || id == "task1":
		return CategoryAds
	case strings.Contains(id, "ref"):
		return CategoryReferral
	case id == "task2" || id == "task3":
		return CategoryFollow
	case strings.Contains(id, "short"):
		return CategoryShorten
	}
	return CategoryOther
}
