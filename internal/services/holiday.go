package services

import (
	"context"
	"errors"

	"amazecare-server/internal/models"
	"amazecare-server/internal/store"
)

// cancelHoliday retires a holiday by status. A holiday that is already
// Cancelled or Completed is left untouched and reported as such rather than
// treated as an error; the caller relays the message.
func cancelHoliday(ctx context.Context, st store.Store, holidayID, doctorID uint) (string, error) {
	holiday, err := st.GetDoctorHoliday(ctx, holidayID, doctorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", notFoundError("holiday not found for this doctor")
		}
		return "", internalError(err)
	}

	switch holiday.Status {
	case models.HolidayCancelled:
		return "Holiday is already cancelled.", nil
	case models.HolidayCompleted:
		return "Holiday is already completed and cannot be cancelled.", nil
	}

	holiday.Status = models.HolidayCancelled
	if err := st.SaveHoliday(ctx, holiday); err != nil {
		return "", internalError(err)
	}
	return "Holiday cancelled successfully.", nil
}
