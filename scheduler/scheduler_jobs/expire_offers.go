package scheduler_jobs

import (
	"github.com/rs/zerolog/log"

	"proximaBot/services/transferService"
)

// ExpireTransferOffers drops pending transfer offers past their 24h expiry.
func ExpireTransferOffers() {
	removed := transferService.Offers.Sweep()
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("expired pending transfer offers")
	}
}
