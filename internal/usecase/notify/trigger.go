package notify

import (
	"fmt"
	"time"
)

// Moscow — фиксированный часовой пояс рассылки (UTC+3), не зависит от хостинга.
var Moscow = time.FixedZone("UTC+3", 3*60*60)

// DailyTrigger — ежедневное срабатывание в заданное локальное время.
type DailyTrigger struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// Next возвращает ближайший момент срабатывания строго после now.
// Момент, совпадающий с now, считается прошедшим и переносится на завтра.
func (t DailyTrigger) Next(now time.Time) time.Time {
	loc := t.Location
	if loc == nil {
		loc = Moscow
	}
	local := now.In(loc)
	run := time.Date(local.Year(), local.Month(), local.Day(), t.Hour, t.Minute, 0, 0, loc)
	if !run.After(local) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}

func (t DailyTrigger) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
