package models

// DashboardStats aggregates the summary counters shown on the dashboard.
// Every field defaults to zero when absent from the response.
type DashboardStats struct {
	TotalStudents  int `json:"totalStudents"`
	TotalTeachers  int `json:"totalTeachers"`
	TotalStandards int `json:"totalStandards"`
	TotalSubjects  int `json:"totalSubjects"`
	TotalBatches   int `json:"totalBatches"`
	ActiveBatches  int `json:"activeBatches"`
}
