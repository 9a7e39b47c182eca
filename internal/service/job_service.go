package service

import (
	"fmt"
	"log"
	"time"

	"washbook/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CompletePastBookings finds confirmed bookings whose slot has passed
// and marks them completed.
func (s *JobService) CompletePastBookings() error {
	log.Println("Cron Job: Checking for bookings to mark as 'completed'...")

	bookingIDs, err := s.Repo.GetConfirmedBookingIDsPastSchedule()
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed bookings past schedule: %w", err)
	}

	if len(bookingIDs) == 0 {
		log.Println("Cron Job: No confirmed bookings found past their schedule.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'completed'. IDs: %v", len(bookingIDs), bookingIDs)

	if err := s.Repo.UpdateBookingStatuses(bookingIDs, statusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}

	log.Printf("Cron Job: Successfully updated %d bookings to 'completed'.", len(bookingIDs))
	return nil
}

// PurgeStalePendingBookings deletes pending bookings whose online
// payment was never verified within the grace window.
func (s *JobService) PurgeStalePendingBookings(gracePeriod time.Duration) (int64, error) {
	return s.Repo.DeletePendingBookingsOlderThan(time.Now().UTC().Add(-gracePeriod))
}
