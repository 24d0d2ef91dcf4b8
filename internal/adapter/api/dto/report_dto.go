package dto

// DailyReportRequest names the day to roll up; empty means today
type DailyReportRequest struct {
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}
