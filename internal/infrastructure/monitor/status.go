package monitor

import "time"

type Status struct {
	Healthy    bool            `json:"healthy"`
	Components map[string]bool `json:"components"`
	LastCheck  time.Time       `json:"last_check"`
}
