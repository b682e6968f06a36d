package services

import (
	"time"

	"venuepro-backend/models"
	"venuepro-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusAhead   = "ahead"
	StatusOnTrack = "on_track"
	StatusBehind  = "behind"
)

// A metric is on track when it is within this fraction of its prorated
// target.
const onTrackTolerance = 0.05

// MetricResult is one row of the P&L dashboard.
type MetricResult struct {
	Metric          string  `json:"metric"`
	Timeframe       string  `json:"timeframe"`
	Target          float64 `json:"target"`
	ProratedTarget  float64 `json:"proratedTarget"`
	Actual          float64 `json:"actual"`
	Variance        float64 `json:"variance"`
	VariancePercent float64 `json:"variancePercent"`
	Status          string  `json:"status"`
}

// PeriodBounds returns the current period's [start, end) for a timeframe.
func PeriodBounds(timeframe string, now time.Time) (time.Time, time.Time) {
	switch timeframe {
	case models.TimeframeWeekly:
		start := utils.BeginningOfWeek(now)
		return start, start.AddDate(0, 0, 7)
	case models.TimeframeQuarterly:
		start := utils.BeginningOfQuarter(now)
		return start, start.AddDate(0, 3, 0)
	default: // monthly
		start := utils.BeginningOfMonth(now)
		return start, start.AddDate(0, 1, 0)
	}
}

// ProrateTarget scales a period target by the elapsed fraction of the
// period, so mid-month actuals compare against a mid-month goal.
func ProrateTarget(target float64, start, end, now time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return target
	}
	elapsed := now.Sub(start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= total {
		return target
	}
	return utils.Round2(target * (elapsed.Seconds() / total.Seconds()))
}

// Variance compares an actual against a (prorated) target.
func Variance(actual, target float64) (variance, percent float64, status string) {
	variance = utils.Round2(actual - target)

	if target == 0 {
		if actual > 0 {
			return variance, 0, StatusAhead
		}
		return 0, 0, StatusOnTrack
	}

	percent = utils.Round2(variance / target * 100)
	switch {
	case actual >= target*(1-onTrackTolerance) && actual <= target*(1+onTrackTolerance):
		status = StatusOnTrack
	case actual > target:
		status = StatusAhead
	default:
		status = StatusBehind
	}
	return variance, percent, status
}

type PnLService struct {
	db *gorm.DB
}

func NewPnLService(db *gorm.DB) *PnLService {
	return &PnLService{db: db}
}

// Dashboard evaluates every target the venue has configured for the
// timeframe against actuals computed from invoices, bookings, check-ins
// and the message log.
func (s *PnLService) Dashboard(venueID uuid.UUID, timeframe string, now time.Time) ([]MetricResult, error) {
	var targets []models.MetricTarget
	if err := s.db.Where("venue_id = ? AND timeframe = ?", venueID, timeframe).Find(&targets).Error; err != nil {
		return nil, err
	}

	start, end := PeriodBounds(timeframe, now)

	results := make([]MetricResult, 0, len(targets))
	for _, target := range targets {
		actual, err := s.actualFor(venueID, target.Metric, start, end)
		if err != nil {
			return nil, err
		}

		prorated := ProrateTarget(target.Target, start, end, now)
		variance, percent, status := Variance(actual, prorated)

		results = append(results, MetricResult{
			Metric:          target.Metric,
			Timeframe:       timeframe,
			Target:          target.Target,
			ProratedTarget:  prorated,
			Actual:          actual,
			Variance:        variance,
			VariancePercent: percent,
			Status:          status,
		})
	}
	return results, nil
}

func (s *PnLService) actualFor(venueID uuid.UUID, metric string, start, end time.Time) (float64, error) {
	var value float64
	var err error

	switch metric {
	case models.MetricRevenue:
		err = s.db.Model(&models.Invoice{}).
			Where("venue_id = ? AND invoice_date >= ? AND invoice_date < ? AND payment_status <> ?",
				venueID, start, end, models.InvoiceVoid).
			Select("COALESCE(SUM(total), 0)").Scan(&value).Error
	case models.MetricCovers:
		err = s.db.Model(&models.Booking{}).
			Where("venue_id = ? AND booking_date >= ? AND booking_date < ? AND status IN ?",
				venueID, start, end, []string{models.BookingConfirmed, models.BookingCompleted}).
			Select("COALESCE(SUM(party_size), 0)").Scan(&value).Error
	case models.MetricCheckins:
		var count int64
		err = s.db.Model(&models.EventCheckin{}).
			Where("venue_id = ? AND checked_in_at >= ? AND checked_in_at < ?", venueID, start, end).
			Count(&count).Error
		value = float64(count)
	case models.MetricMessages:
		var count int64
		err = s.db.Model(&models.MessageLog{}).
			Where("venue_id = ? AND sent_at >= ? AND sent_at < ? AND status IN ?",
				venueID, start, end, []string{"sent", "delivered"}).
			Count(&count).Error
		value = float64(count)
	}

	return value, err
}
