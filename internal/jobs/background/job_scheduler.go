package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// renewalWindow is how far ahead lease endings trigger renewal reminders.
const renewalWindow = 60 * 24 * time.Hour

// JobScheduler runs the recurring notification jobs: rent payment
// reminders near month end and lease renewal reminders.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	leaseRepo    repositories.LeaseRepository
	messagingSvc services.MessagingService
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

func NewJobScheduler(leaseRepo repositories.LeaseRepository, messagingSvc services.MessagingService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		leaseRepo:    leaseRepo,
		messagingSvc: messagingSvc,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	rentJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.processRentReminders, context.Background()),
		gocron.WithName("rent-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create rent reminder job: %v", err)
	} else {
		js.jobs["rent-reminders"] = rentJob
	}

	renewalJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.processRenewalReminders, context.Background()),
		gocron.WithName("lease-renewal-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create renewal reminder job: %v", err)
	} else {
		js.jobs["lease-renewal-reminders"] = renewalJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// processRentReminders sends payment reminders for active leases during
// the last five days of the month, ahead of rent due on the first.
func (js *JobScheduler) processRentReminders(ctx context.Context) error {
	now := time.Now()
	if !inReminderWindow(now) {
		return nil
	}

	reminders, err := js.leaseRepo.ListActiveReminders(ctx)
	if err != nil {
		log.Printf("Failed to list leases for rent reminders: %v", err)
		return err
	}

	dueDate := firstOfNextMonth(now)
	sent := 0
	for _, reminder := range reminders {
		if reminder.TenantPhone == nil || *reminder.TenantPhone == "" {
			continue
		}
		result := js.messagingSvc.SendPaymentReminder(ctx, *reminder.TenantPhone, reminder.TenantName, reminder.RentAmount, dueDate, "en")
		if !result.Success {
			log.Printf("Rent reminder for lease %s failed: %s", reminder.LeaseID.String(), result.Error)
			continue
		}
		sent++
	}
	log.Printf("Rent reminders: %d sent of %d active leases", sent, len(reminders))
	return nil
}

func (js *JobScheduler) processRenewalReminders(ctx context.Context) error {
	cutoff := time.Now().Add(renewalWindow)
	reminders, err := js.leaseRepo.ListEndingBefore(ctx, cutoff)
	if err != nil {
		log.Printf("Failed to list leases for renewal reminders: %v", err)
		return err
	}

	sent := 0
	for _, reminder := range reminders {
		if reminder.TenantPhone == nil || *reminder.TenantPhone == "" {
			continue
		}
		result := js.messagingSvc.SendLeaseRenewalReminder(ctx, *reminder.TenantPhone, reminder.TenantName, reminder.EndDate, "en")
		if !result.Success {
			log.Printf("Renewal reminder for lease %s failed: %s", reminder.LeaseID.String(), result.Error)
			continue
		}
		sent++
	}
	log.Printf("Renewal reminders: %d sent of %d expiring leases", sent, len(reminders))
	return nil
}

func inReminderWindow(now time.Time) bool {
	lastDay := firstOfNextMonth(now).AddDate(0, 0, -1).Day()
	return now.Day() > lastDay-5
}

func firstOfNextMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
}
