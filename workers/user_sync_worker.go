// workers/user_sync_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"card-explorer-backend/models"
	"card-explorer-backend/services"

	"gorm.io/gorm"
)

// ProfileSyncWorker reconciles the person table with the role tables:
// every person with role "usuario" gets a PlayerProfile, every
// "educador" an Educator row. Accounts registered before profiles became
// automatic (or touched directly in the DB) are backfilled here.
type ProfileSyncWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewProfileSyncWorker(db *gorm.DB, interval time.Duration) *ProfileSyncWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ProfileSyncWorker{db: db, interval: interval}
}

func (w *ProfileSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting profile sync worker…")
	go w.run(ctx)
}

func (w *ProfileSyncWorker) run(ctx context.Context) {
	if err := w.syncOnce(); err != nil {
		log.Printf("⚠️ Initial profile sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.syncOnce(); err != nil {
				log.Printf("❌ Profile sync failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Profile sync worker stopped")
			return
		}
	}
}

func (w *ProfileSyncWorker) syncOnce() error {
	var people []models.Person
	if err := w.db.Find(&people).Error; err != nil {
		return err
	}

	var created int
	for _, p := range people {
		if p.Role == models.RolePlayer {
			var count int64
			if err := w.db.Model(&models.PlayerProfile{}).Where("nickname = ?", p.Nickname).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			profile := models.PlayerProfile{
				Nickname: p.Nickname,
				Ranking:  services.RankingForLevel(1),
				Level:    1,
			}
			if err := w.db.Create(&profile).Error; err != nil {
				log.Printf("[SYNC] ⚠️ Failed to backfill profile for %s: %v", p.Nickname, err)
				continue
			}
			created++
		} else if p.Role == models.RoleEducator {
			var count int64
			if err := w.db.Model(&models.Educator{}).Where("nickname = ?", p.Nickname).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := w.db.Create(&models.Educator{Nickname: p.Nickname}).Error; err != nil {
				log.Printf("[SYNC] ⚠️ Failed to backfill educator for %s: %v", p.Nickname, err)
				continue
			}
			created++
		}
	}

	if created > 0 {
		log.Printf("[SYNC] ✅ Backfilled %d role row(s)", created)
	}
	return nil
}
