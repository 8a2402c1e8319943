package settlement

import (
	"math"

	"github.com/pickpool/pickpool/go/internal/models"
)

// missingDiff sorts members without a usable tiebreak prediction behind every
// member who made one.
const missingDiff = math.MaxInt32

// tiebreakFields computes the numeric tiebreak tuple for one member against
// the marquee game. A nil game, a game without final scores, or a pick
// without a score prediction all yield the worst possible tuple.
func tiebreakFields(game *models.Game, pick *models.Pick) (pickedWinner bool, totalDiff, winnerDiff, loserDiff int) {
	totalDiff, winnerDiff, loserDiff = missingDiff, missingDiff, missingDiff

	if game == nil || !game.Final || game.HomeScore == nil || game.AwayScore == nil || pick == nil {
		return false, totalDiff, winnerDiff, loserDiff
	}

	winning := game.WinningSide()
	pickedWinner = winning != models.SideNone && pick.Selected == winning

	if pick.TiebreakHome == nil || pick.TiebreakAway == nil {
		return pickedWinner, totalDiff, winnerDiff, loserDiff
	}

	actualHome, actualAway := *game.HomeScore, *game.AwayScore
	predHome, predAway := *pick.TiebreakHome, *pick.TiebreakAway

	totalDiff = abs((predHome + predAway) - (actualHome + actualAway))

	// Accuracy on the winning side counts before the losing side. A tied
	// marquee game has no winning side, so home stands in for it.
	switch winning {
	case models.SideAway:
		winnerDiff = abs(predAway - actualAway)
		loserDiff = abs(predHome - actualHome)
	default:
		winnerDiff = abs(predHome - actualHome)
		loserDiff = abs(predAway - actualAway)
	}
	return pickedWinner, totalDiff, winnerDiff, loserDiff
}

// lessRow orders standings rows best-first: correct picks descending, then
// the tiebreak tuple ascending. The tuple ends on username, so the order is
// a strict total order whenever usernames are unique.
func lessRow(a, b models.StandingsRow) bool {
	if a.CorrectPicks != b.CorrectPicks {
		return a.CorrectPicks > b.CorrectPicks
	}
	if a.PickedWinner != b.PickedWinner {
		return a.PickedWinner
	}
	if a.TotalDiff != b.TotalDiff {
		return a.TotalDiff < b.TotalDiff
	}
	if a.WinnerDiff != b.WinnerDiff {
		return a.WinnerDiff < b.WinnerDiff
	}
	if a.LoserDiff != b.LoserDiff {
		return a.LoserDiff < b.LoserDiff
	}
	if !a.FirstPickAt.Equal(b.FirstPickAt) {
		return a.FirstPickAt.Before(b.FirstPickAt)
	}
	return a.Username < b.Username
}

// rowsTied reports whether two rows are indistinguishable through the entire
// tiebreak tuple, username included. Tied rows share a rank and, at the top
// of a complete week, are all winners.
func rowsTied(a, b models.StandingsRow) bool {
	return a.CorrectPicks == b.CorrectPicks &&
		a.PickedWinner == b.PickedWinner &&
		a.TotalDiff == b.TotalDiff &&
		a.WinnerDiff == b.WinnerDiff &&
		a.LoserDiff == b.LoserDiff &&
		a.FirstPickAt.Equal(b.FirstPickAt) &&
		a.Username == b.Username
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
