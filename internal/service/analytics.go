package service

import (
	"context"
	"math"
	"time"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/repository"
)

const activityDays = 7

// AnalyticsService assembles the dashboard payload.
type AnalyticsService struct {
	repo repository.AnalyticsRepository
	now  func() time.Time
}

// NewAnalyticsService builds the dashboard service. now defaults to time.Now.
func NewAnalyticsService(repo repository.AnalyticsRepository, now func() time.Time) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{repo: repo, now: now}
}

// Dashboard computes live counters and the last seven days of email activity.
func (s *AnalyticsService) Dashboard(ctx context.Context) (entity.Dashboard, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := today.AddDate(0, 0, -(activityDays - 1))

	stats, err := s.repo.DashboardStats(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return entity.Dashboard{}, err
	}
	if stats.EmailsSent > 0 {
		stats.ResponseRate = math.Round(float64(stats.Responded)/float64(stats.EmailsSent)*1000) / 10
	}

	activity, err := s.repo.EmailActivity(ctx, from)
	if err != nil {
		return entity.Dashboard{}, err
	}
	byRole, err := s.repo.ContactsByRole(ctx)
	if err != nil {
		return entity.Dashboard{}, err
	}
	byStage, err := s.repo.CompaniesByStage(ctx)
	if err != nil {
		return entity.Dashboard{}, err
	}

	return entity.Dashboard{
		Stats: stats,
		Charts: entity.DashboardCharts{
			EmailActivity:    fillDays(activity, from, activityDays),
			ContactsByRole:   nonNilCounts(byRole),
			CompaniesByStage: nonNilCounts(byStage),
		},
	}, nil
}

// fillDays returns one point per day starting at from, zero-filled.
func fillDays(points []entity.DailyEmailActivity, from time.Time, days int) []entity.DailyEmailActivity {
	byDate := make(map[string]entity.DailyEmailActivity, len(points))
	for _, p := range points {
		byDate[p.Date] = p
	}
	out := make([]entity.DailyEmailActivity, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i).Format("2006-01-02")
		p, ok := byDate[date]
		if !ok {
			p = entity.DailyEmailActivity{Date: date}
		}
		out = append(out, p)
	}
	return out
}

func nonNilCounts(counts []entity.LabelCount) []entity.LabelCount {
	if counts == nil {
		return []entity.LabelCount{}
	}
	return counts
}

// DemoDashboard returns the canned dashboard shown in demo mode.
func DemoDashboard() entity.Dashboard {
	return entity.Dashboard{
		Stats: entity.DashboardStats{
			TotalContacts:     1247,
			TotalCompanies:    186,
			EmailsSent:        892,
			ResponseRate:      23.5,
			ContactedThisWeek: 47,
			NotContactedCount: 723,
			ActiveCampaigns:   5,
		},
		Charts: entity.DashboardCharts{
			EmailActivity: []entity.DailyEmailActivity{
				{Date: "Sep 1", Sent: 45, Opened: 25, Replied: 6},
				{Date: "Sep 2", Sent: 52, Opened: 30, Replied: 8},
				{Date: "Sep 3", Sent: 48, Opened: 22, Replied: 5},
				{Date: "Sep 4", Sent: 61, Opened: 35, Replied: 12},
				{Date: "Sep 5", Sent: 55, Opened: 28, Replied: 9},
				{Date: "Sep 6", Sent: 47, Opened: 20, Replied: 4},
				{Date: "Sep 7", Sent: 38, Opened: 15, Replied: 3},
			},
			ContactsByRole: []entity.LabelCount{
				{Label: "Founder", Count: 45},
				{Label: "Executive", Count: 67},
				{Label: "VC", Count: 23},
				{Label: "Board Member", Count: 18},
			},
			CompaniesByStage: []entity.LabelCount{
				{Label: "Series A", Count: 75},
				{Label: "Series B", Count: 64},
				{Label: "Series C", Count: 47},
			},
		},
	}
}
