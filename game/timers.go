package game

import "time"

type timerGen struct{}

func (timerGen) Create(d time.Duration) <-chan time.Time {
	return time.NewTimer(d).C
}

func NewTimerGen() TimerCreator {
	return timerGen{}
}
