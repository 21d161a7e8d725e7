package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/lifecycle"
	"github.com/example/debtdesk/internal/models"
)

// DashboardStats aggregates the figures shown on the admin dashboard.
type DashboardStats struct {
	TotalCases       int64            `json:"totalCases"`
	OpenCases        int64            `json:"openCases"`
	CompletedCases   int64            `json:"completedCases"`
	CasesByStage     map[string]int64 `json:"casesByStage"`
	PendingDocuments int64            `json:"pendingDocuments"`
	PendingCallbacks int64            `json:"pendingCallbacks"`
	NewLeads         int64            `json:"newLeads"`
	UnreadMessages   int64            `json:"unreadMessages"`
}

// StatsRepository runs the aggregation queries behind the admin dashboard.
type StatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository constructs a repository using the provided gorm DB.
func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Dashboard computes the aggregate counts in one pass per table.
func (r *StatsRepository) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{CasesByStage: make(map[string]int64, len(lifecycle.Stages))}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Case{}).Count(&stats.TotalCases).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	if err := db.Model(&models.Case{}).
		Where("status = ?", models.CaseStatusOpen).
		Count(&stats.OpenCases).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	if err := db.Model(&models.Case{}).
		Where("status = ?", models.CaseStatusCompleted).
		Count(&stats.CompletedCases).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	var rows []struct {
		Stage string
		N     int64
	}
	if err := db.Model(&models.Case{}).
		Select("stage, count(*) as n").
		Group("stage").
		Scan(&rows).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	for _, s := range lifecycle.Stages {
		stats.CasesByStage[string(s)] = 0
	}
	for _, row := range rows {
		stats.CasesByStage[row.Stage] = row.N
	}

	if err := db.Model(&models.CaseDocument{}).
		Where("status = ?", models.DocumentStatusPending).
		Count(&stats.PendingDocuments).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	if err := db.Model(&models.CallbackRequest{}).
		Where("status = ?", models.CallbackStatusPending).
		Count(&stats.PendingCallbacks).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	if err := db.Model(&models.PaymentLead{}).
		Where("status = ?", models.LeadStatusNew).
		Count(&stats.NewLeads).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	if err := db.Model(&models.CaseMessage{}).
		Where("sender_role = ? AND read_at IS NULL", models.RoleUser).
		Count(&stats.UnreadMessages).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return stats, nil
}
