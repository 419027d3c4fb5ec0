// services/scheduler.go
package services

import (
	"log"
	"time"

	"card-explorer-backend/models"

	"github.com/go-co-op/gocron/v2"
)

// StartMissionScheduler activates scheduled missions whose start date
// arrived and closes active missions past their end date. Runs every
// minute.
func (s *MissionService) StartMissionScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()

			var toActivate []models.Mission
			if err := s.DB.Where("status = ? AND starts_at <= ?", models.MissionStatusScheduled, now).
				Find(&toActivate).Error; err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, m := range toActivate {
				m.Status = models.MissionStatusActive
				if err := s.DB.Save(&m).Error; err != nil {
					log.Printf("[Scheduler] Failed to activate mission %d: %v", m.Code, err)
				} else {
					log.Printf("✅ Mission %d is now active", m.Code)
				}
			}

			var toClose []models.Mission
			if err := s.DB.Where("status = ? AND ends_at IS NOT NULL AND ends_at <= ?", models.MissionStatusActive, now).
				Find(&toClose).Error; err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, m := range toClose {
				m.Status = models.MissionStatusClosed
				if err := s.DB.Save(&m).Error; err != nil {
					log.Printf("[Scheduler] Failed to close mission %d: %v", m.Code, err)
				} else {
					log.Printf("✅ Mission %d closed", m.Code)
				}
			}
		}),
	)
}
