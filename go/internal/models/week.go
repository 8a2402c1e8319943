package models

import "fmt"

// WeekRef identifies one scoring period: a week within a season.
type WeekRef struct {
	Season int `json:"season"`
	Week   int `json:"week"`
}

func (w WeekRef) String() string {
	return fmt.Sprintf("%d/wk%d", w.Season, w.Week)
}
