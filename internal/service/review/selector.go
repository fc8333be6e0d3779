package review

import (
	"math/rand"

	"github.com/pkarhu/rehearse/internal/domain"
)

// selectNextCard picks one card from a due list that is already ordered
// ascending by next review date. With poolSize == 0 the pick is uniform
// among the cards sharing the earliest due date, so cards seeded in the
// same minute are interleaved instead of drilled in insertion order. With
// poolSize = K > 0 the pick is uniform among the first K cards.
//
// Pure function of its inputs; the rng is the only source of randomness.
func selectNextCard(cards []*domain.Card, poolSize int, rng *rand.Rand) *domain.Card {
	if len(cards) == 0 {
		return nil
	}

	pool := len(cards)
	if poolSize > 0 {
		if poolSize < pool {
			pool = poolSize
		}
	} else {
		earliest := cards[0].NextReviewDate
		pool = 1
		for pool < len(cards) && cards[pool].NextReviewDate.Equal(earliest) {
			pool++
		}
	}

	return cards[rng.Intn(pool)]
}

// askedSide resolves which side of the card to prompt with. Cards in the
// "both" state get one random draw per selection.
func askedSide(card *domain.Card, rng *rand.Rand) domain.Direction {
	if card.ActiveDirection != domain.DirectionBoth {
		return card.ActiveDirection
	}
	if rng.Intn(2) == 0 {
		return domain.DirectionFront
	}
	return domain.DirectionBack
}
