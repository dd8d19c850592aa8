// Package cibil tracks the user's CIBIL credit score and its history.
package cibil

import (
	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/money"
	"github.com/ccms-app/dashboard/internal/store"
)

// Record is a CIBIL score report as the API returns it.
type Record struct {
	MongoID                     string           `json:"_id,omitempty"`
	ID                          string           `json:"id,omitempty"`
	UserID                      string           `json:"user_id,omitempty"`
	Score                       int              `json:"score"`
	ScoreDate                   string           `json:"score_date,omitempty"`
	ScoreType                   string           `json:"score_type,omitempty"`
	ScoreRange                  string           `json:"score_range,omitempty"`
	PaymentHistoryScore         int              `json:"payment_history_score,omitempty"`
	CreditUtilizationScore      int              `json:"credit_utilization_score,omitempty"`
	CreditAgeScore              int              `json:"credit_age_score,omitempty"`
	CreditMixScore              int              `json:"credit_mix_score,omitempty"`
	NewCreditScore              int              `json:"new_credit_score,omitempty"`
	TotalAccounts               int              `json:"total_accounts,omitempty"`
	ActiveAccounts              int              `json:"active_accounts,omitempty"`
	ClosedAccounts              int              `json:"closed_accounts,omitempty"`
	CreditInquiries             int              `json:"credit_inquiries,omitempty"`
	HardInquiries               int              `json:"hard_inquiries,omitempty"`
	SoftInquiries               int              `json:"soft_inquiries,omitempty"`
	TotalCreditLimit            *decimal.Decimal `json:"total_credit_limit,omitempty"`
	TotalOutstanding            *decimal.Decimal `json:"total_outstanding,omitempty"`
	CreditUtilizationPercentage *decimal.Decimal `json:"credit_utilization_percentage,omitempty"`
	OldestAccountAge            int              `json:"oldest_account_age,omitempty"`
	NewestAccountAge            int              `json:"newest_account_age,omitempty"`
	AverageAccountAge           *decimal.Decimal `json:"average_account_age,omitempty"`
	LatePayments                int              `json:"late_payments,omitempty"`
	MissedPayments              int              `json:"missed_payments,omitempty"`
	Defaults                    int              `json:"defaults,omitempty"`
	Bankruptcies                int              `json:"bankruptcies,omitempty"`
	Collections                 int              `json:"collections,omitempty"`
	IsCurrent                   bool             `json:"is_current"`
	IsVerified                  bool             `json:"is_verified"`
	ReportNumber                string           `json:"report_number,omitempty"`
	BureauReference             string           `json:"bureau_reference,omitempty"`
	Notes                       string           `json:"notes,omitempty"`
	CreatedAt                   string           `json:"created_at,omitempty"`
}

// Factors are the five weighted components of a score.
type Factors struct {
	PaymentHistory    int `json:"paymentHistory"`
	CreditUtilization int `json:"creditUtilization"`
	CreditAge         int `json:"creditAge"`
	CreditMix         int `json:"creditMix"`
	NewCredit         int `json:"newCredit"`
}

// View is a score report ready for display.
type View struct {
	ID               string          `json:"id"`
	Score            int             `json:"score"`
	Band             string          `json:"band"`
	Date             string          `json:"date"`
	Type             string          `json:"type,omitempty"`
	Range            string          `json:"range,omitempty"`
	Factors          Factors         `json:"factors"`
	TotalAccounts    int             `json:"totalAccounts"`
	ActiveAccounts   int             `json:"activeAccounts"`
	TotalCreditLimit string          `json:"totalCreditLimit"`
	TotalOutstanding string          `json:"totalOutstanding"`
	Utilization      decimal.Decimal `json:"utilization"`
	LatePayments     int             `json:"latePayments"`
	MissedPayments   int             `json:"missedPayments"`
	HardInquiries    int             `json:"hardInquiries"`
	Current          bool            `json:"current"`
	Verified         bool            `json:"verified"`
	ReportNumber     string          `json:"reportNumber,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// Normalize maps an API score report onto its display form.
func Normalize(r Record) View {
	return View{
		ID:    store.RecordID(r.MongoID, r.ID),
		Score: r.Score,
		Band:  Band(r.Score),
		Date:  r.ScoreDate,
		Type:  r.ScoreType,
		Range: r.ScoreRange,
		Factors: Factors{
			PaymentHistory:    r.PaymentHistoryScore,
			CreditUtilization: r.CreditUtilizationScore,
			CreditAge:         r.CreditAgeScore,
			CreditMix:         r.CreditMixScore,
			NewCredit:         r.NewCreditScore,
		},
		TotalAccounts:    r.TotalAccounts,
		ActiveAccounts:   r.ActiveAccounts,
		TotalCreditLimit: money.INRPtr(r.TotalCreditLimit),
		TotalOutstanding: money.INRPtr(r.TotalOutstanding),
		Utilization:      money.OrZero(r.CreditUtilizationPercentage),
		LatePayments:     r.LatePayments,
		MissedPayments:   r.MissedPayments,
		HardInquiries:    r.HardInquiries,
		Current:          r.IsCurrent,
		Verified:         r.IsVerified,
		ReportNumber:     r.ReportNumber,
		Notes:            r.Notes,
	}
}

// Band names the bureau bracket a score falls in.
func Band(score int) string {
	switch {
	case score >= 750:
		return "Excellent"
	case score >= 700:
		return "Good"
	case score >= 650:
		return "Fair"
	case score >= 300:
		return "Poor"
	default:
		return "Not available"
	}
}
