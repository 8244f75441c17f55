package usecase

import (
	"math"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/ossrfc/ossrfc/internal/domain"
	"github.com/ossrfc/ossrfc/internal/matching"
)

// How many contributors after the top one are weighed against them.
const dominanceWindow = 10

// contributionStats filters bots out of the contributor list and rates
// the dominance of the top human contributor: 1 minus the ratio of the
// combined next ten contributors to the top one, rounded to two
// decimals. With fewer than two human contributors the dominance is
// pinned to 1 and the single-contributor rule fires instead.
func contributionStats(contributors []domain.Contributor, logger *zap.SugaredLogger) *domain.ContributionStats {
	var humans []domain.Contributor
	for _, contributor := range contributors {
		if contributor.Type == "Bot" || matching.IsBot(contributor.Login) {
			logger.Debugf("Contributor %q has been detected as a bot and is not "+
				"considered in the predominant contributor check", contributor.Login)
			continue
		}
		humans = append(humans, contributor)
	}

	result := &domain.ContributionStats{HumanContributors: len(humans)}
	if len(humans) < 2 {
		result.Dominance = 1
		return result
	}

	// Contributors arrive ordered by contribution count, so the first
	// human is the top one.
	top := float64(humans[0].Contributions)
	next := humans[1:]
	if len(next) > dominanceWindow {
		next = next[:dominanceWindow]
	}
	counts := make([]float64, 0, len(next))
	for _, contributor := range next {
		counts = append(counts, float64(contributor.Contributions))
	}
	sum, err := stats.Sum(counts)
	if err != nil {
		// Unreachable: counts has at least one entry here.
		return result
	}

	result.Dominance = math.Round((1-sum/top)*100) / 100
	return result
}
