package scheduler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"proximaBot/models"
	"proximaBot/scheduler/scheduler_jobs"
)

func SetupCron(s *discordgo.Session, db *gorm.DB) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("0 */10 * * * *", func() {
		// Every 10 minutes
		scheduler_jobs.ExpireTransferOffers()
	})
	_, err = cronService.AddFunc("0 0 4 * * *", func() {
		// At 4am every day
		err := scheduler_jobs.PruneFreeAgents(db)
		if err != nil {
			fmt.Println(err)
		}
	})
	_, err = cronService.AddFunc("0 30 4 * * *", func() {
		// At 4:30am every day
		err := scheduler_jobs.TrimErrorLogs(db)
		if err != nil {
			fmt.Println(err)
		}
	})

	if err != nil {
		errLog := models.ErrorLog{
			GuildID: "CRON ERR",
			Message: fmt.Sprintf("%v", err),
		}
		db.Create(&errLog)
	}

	cronService.Start()
}
