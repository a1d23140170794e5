package engine

import (
	"fmt"

	"github.com/sgce/sports-competition-system/models"
)

func DefaultSuspensionRules() models.SuspensionRules {
	return models.SuspensionRules{YellowCards: 2, RedCard: 1}
}

// ApplyCard records one card on an athlete's disciplinary record and
// updates the suspension flag. The flag latches: once set it stays set
// until an explicit administrative clear, never automatically.
func ApplyCard(record *models.DisciplinaryRecord, card models.CardType, rules models.SuspensionRules) error {
	switch card {
	case models.CardYellow:
		record.YellowCards++
	case models.CardRed:
		record.RedCards++
	default:
		return fmt.Errorf("unknown card type %q", card)
	}

	if IsSuspended(record, rules) {
		record.Suspended = true
	}
	return nil
}

// IsSuspended evaluates the accumulated counters against the sport's
// thresholds. A latched Suspended flag also counts.
func IsSuspended(record *models.DisciplinaryRecord, rules models.SuspensionRules) bool {
	if record.Suspended {
		return true
	}
	return record.YellowCards >= rules.YellowCards || record.RedCards >= rules.RedCard
}
