package services

import (
	"time"

	"venuepro-backend/models"
	"venuepro-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	weeklyOvertimeThreshold = 40.0 // hours per Monday-based week
	overtimeMultiplier      = 1.5
)

// HoursBreakdown is the regular/overtime split for one employee over a
// payroll period.
type HoursBreakdown struct {
	Regular  float64
	Overtime float64
}

// SplitHours buckets shifts into Monday-based weeks and splits each week's
// hours at the overtime threshold.
func SplitHours(shifts []models.Shift) HoursBreakdown {
	weekly := make(map[time.Time]float64)
	for _, shift := range shifts {
		if !shift.EndsAt.After(shift.StartsAt) {
			continue
		}
		week := utils.BeginningOfWeek(shift.StartsAt)
		weekly[week] += shift.EndsAt.Sub(shift.StartsAt).Hours()
	}

	var breakdown HoursBreakdown
	for _, hours := range weekly {
		if hours > weeklyOvertimeThreshold {
			breakdown.Regular += weeklyOvertimeThreshold
			breakdown.Overtime += hours - weeklyOvertimeThreshold
		} else {
			breakdown.Regular += hours
		}
	}
	return breakdown
}

// GrossPay prices a breakdown at an hourly rate with overtime uplift.
func GrossPay(breakdown HoursBreakdown, hourlyRate float64) float64 {
	return utils.Round2(breakdown.Regular*hourlyRate + breakdown.Overtime*hourlyRate*overtimeMultiplier)
}

// ShiftsOverlap reports whether two time ranges intersect; used to reject
// double-booked rota entries.
func ShiftsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

type PayrollService struct {
	db *gorm.DB
}

func NewPayrollService(db *gorm.DB) *PayrollService {
	return &PayrollService{db: db}
}

// RunPayroll computes gross pay per employee from approved shifts in the
// period and persists the run with its lines.
func (s *PayrollService) RunPayroll(venueID, userID uuid.UUID, start, end time.Time) (*models.PayrollRun, error) {
	var employees []models.Employee
	if err := s.db.Where("venue_id = ? AND is_active = true", venueID).Find(&employees).Error; err != nil {
		return nil, err
	}

	run := models.PayrollRun{
		VenueID:         venueID,
		CreatedByUserID: userID,
		PeriodStart:     utilsDate(start),
		PeriodEnd:       utilsDate(end),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}

		for _, employee := range employees {
			var shifts []models.Shift
			if err := tx.Where(
				"venue_id = ? AND employee_id = ? AND status = ? AND starts_at >= ? AND starts_at < ?",
				venueID, employee.ID, models.ShiftApproved, utilsDate(start), utilsDate(end).AddDate(0, 0, 1),
			).Find(&shifts).Error; err != nil {
				return err
			}
			if len(shifts) == 0 {
				continue
			}

			breakdown := SplitHours(shifts)
			line := models.PayrollLine{
				PayrollRunID:  run.ID,
				EmployeeID:    employee.ID,
				RegularHours:  utils.Round2(breakdown.Regular),
				OvertimeHours: utils.Round2(breakdown.Overtime),
				HourlyRate:    employee.HourlyRate,
				GrossPay:      GrossPay(breakdown, employee.HourlyRate),
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			run.GrossTotal += line.GrossPay
			run.Lines = append(run.Lines, line)
		}

		run.GrossTotal = utils.Round2(run.GrossTotal)
		return tx.Model(&models.PayrollRun{}).Where("id = ?", run.ID).
			Update("gross_total", run.GrossTotal).Error
	})
	if err != nil {
		return nil, err
	}

	return &run, nil
}
