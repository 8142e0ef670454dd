package meet

import (
	"sort"

	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/db"
)

//GroupScore is the aggregate score of a team
type GroupScore struct {
	Group       db.TeamColor `json:"group"`
	TotalPoints int          `json:"totalPoints"`
	Golds       int          `json:"golds"`
	Silvers     int          `json:"silvers"`
	Bronzes     int          `json:"bronzes"`
}

//CalculateLeaderboard aggregates results into one GroupScore per team, highest total first.
//Teams with equal totals keep the order of db.TeamColors
func CalculateLeaderboard(results []db.Result) []GroupScore {
	scores := make([]GroupScore, len(db.TeamColors))
	index := make(map[db.TeamColor]int, len(db.TeamColors))
	for i, c := range db.TeamColors {
		scores[i].Group = c
		index[c] = i
	}

	for _, r := range results {
		i, ok := index[r.Group]
		if !ok {
			continue
		}

		s := &scores[i]
		s.TotalPoints += r.Points
		switch r.Position {
		case 1:
			s.Golds++
		case 2:
			s.Silvers++
		case 3:
			s.Bronzes++
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalPoints > scores[j].TotalPoints
	})

	return scores
}
