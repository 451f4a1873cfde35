// file: internals/features/users/scheduler/cleanup.go
package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	userRepository "abcschool_backend/internals/features/users/repository"

	"gorm.io/gorm"
)

// StartBlacklistCleanupScheduler membersihkan token_blacklists yang sudah
// kadaluarsa secara berkala, supaya tabel tidak membengkak.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		// Interval dari env (default: 24 jam)
		intervalHours := 24
		if val := os.Getenv("TOKEN_BLACKLIST_CLEANUP_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalHours = parsed
			}
		}

		for {
			log.Println("[CLEANUP] Menjalankan pembersihan token_blacklists...")

			deleted, err := userRepository.CleanupExpiredBlacklist(db)
			if err != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus token kadaluarsa: %v", err)
			} else if deleted > 0 {
				log.Printf("[CLEANUP] %d token kadaluarsa dihapus", deleted)
			} else {
				log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
			}

			time.Sleep(time.Duration(intervalHours) * time.Hour)
		}
	}()
}
