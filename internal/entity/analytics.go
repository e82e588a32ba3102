package entity

// DashboardStats are the headline counters on the analytics dashboard.
type DashboardStats struct {
	TotalContacts     int     `json:"totalContacts"`
	TotalCompanies    int     `json:"totalCompanies"`
	EmailsSent        int     `json:"emailsSent"`
	ResponseRate      float64 `json:"responseRate"`
	ContactedThisWeek int     `json:"contactedThisWeek"`
	NotContactedCount int     `json:"notContactedCount"`
	ActiveCampaigns   int     `json:"activeCampaigns"`
	Responded         int     `json:"-"`
}

// DailyEmailActivity is one point of the email activity chart.
type DailyEmailActivity struct {
	Date    string `json:"date"`
	Sent    int    `json:"sent"`
	Opened  int    `json:"opened"`
	Replied int    `json:"replied"`
}

// LabelCount is a generic bucket for pie/bar charts.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardCharts groups chart series.
type DashboardCharts struct {
	EmailActivity    []DailyEmailActivity `json:"emailActivity"`
	ContactsByRole   []LabelCount         `json:"contactsByRole"`
	CompaniesByStage []LabelCount         `json:"companiesByStage"`
}

// Dashboard is the aggregate analytics payload.
type Dashboard struct {
	Stats  DashboardStats  `json:"stats"`
	Charts DashboardCharts `json:"charts"`
}
