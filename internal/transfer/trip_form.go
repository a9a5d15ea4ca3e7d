package transfer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/maheshrc27/tripnest-api/internal/models"
)

const (
	MaxTripNameLength    = 100
	MaxDescriptionLength = 500
	MaxSummaryLength     = 200
	MaxTripDays          = 365
)

// FieldError is an inline form error: which field, and the message to show under it.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the Trip Composer form and returns the parsed date range.
// The first failing field wins, in form order.
func (in *TripInput) Validate() (models.Date, models.Date, *FieldError) {
	var start, end models.Date

	name := strings.TrimSpace(in.TripName)
	if name == "" {
		return start, end, &FieldError{"trip_name", "請輸入行程名稱"}
	}
	if utf8.RuneCountInString(name) > MaxTripNameLength {
		return start, end, &FieldError{"trip_name", fmt.Sprintf("行程名稱不能超過%d字", MaxTripNameLength)}
	}
	if utf8.RuneCountInString(in.Description) > MaxDescriptionLength {
		return start, end, &FieldError{"description", fmt.Sprintf("描述不能超過%d字", MaxDescriptionLength)}
	}

	if strings.TrimSpace(in.StartDate) == "" {
		return start, end, &FieldError{"start_date", "請選擇開始日期"}
	}
	if strings.TrimSpace(in.EndDate) == "" {
		return start, end, &FieldError{"end_date", "請選擇結束日期"}
	}

	var err error
	if start, err = models.ParseDate(strings.TrimSpace(in.StartDate)); err != nil {
		return start, end, &FieldError{"start_date", "日期格式錯誤"}
	}
	if end, err = models.ParseDate(strings.TrimSpace(in.EndDate)); err != nil {
		return start, end, &FieldError{"end_date", "日期格式錯誤"}
	}
	if end.Before(start.Time) {
		return start, end, &FieldError{"end_date", "結束日期不能早於開始日期"}
	}
	if start.DaysUntil(end) > MaxTripDays {
		return start, end, &FieldError{"end_date", fmt.Sprintf("行程天數不能超過%d天", MaxTripDays)}
	}

	if utf8.RuneCountInString(in.SummaryText) > MaxSummaryLength {
		return start, end, &FieldError{"summary_text", fmt.Sprintf("摘要不能超過%d字", MaxSummaryLength)}
	}
	return start, end, nil
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidateTimeWindow accepts empty values or HH:MM, with end not before start.
func ValidateTimeWindow(startTime, endTime string) *FieldError {
	if startTime != "" && !clockPattern.MatchString(startTime) {
		return &FieldError{"start_time", "時間格式錯誤"}
	}
	if endTime != "" && !clockPattern.MatchString(endTime) {
		return &FieldError{"end_time", "時間格式錯誤"}
	}
	if startTime != "" && endTime != "" && endTime < startTime {
		return &FieldError{"end_time", "結束時間不能早於開始時間"}
	}
	return nil
}
