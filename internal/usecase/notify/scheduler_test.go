package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// shiftedClock идёт с реальной скоростью, начиная с base.
func shiftedClock(base time.Time) func() time.Time {
	start := time.Now()
	return func() time.Time { return base.Add(time.Since(start)) }
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("условие не выполнилось за %s", timeout)
}

func TestActivateStartsThreeJobs(t *testing.T) {
	s := NewScheduler(&fakeSender{}, zerolog.Nop())
	defer s.Stop()

	set := s.Activate(42)
	if len(set.Jobs) != 3 {
		t.Fatalf("ожидали 3 задачи, получили %d", len(set.Jobs))
	}
	if got := s.LiveJobs(42); got != 3 {
		t.Fatalf("ожидали 3 живые задачи, получили %d", got)
	}
	if got := s.LiveJobs(7); got != 0 {
		t.Fatalf("у другого чата не должно быть задач, получили %d", got)
	}
}

func TestActivateTwiceReplacesJobs(t *testing.T) {
	s := NewScheduler(&fakeSender{}, zerolog.Nop())
	defer s.Stop()

	first := s.Activate(42)
	second := s.Activate(42)

	for _, job := range first.Jobs {
		select {
		case <-job.Done():
		case <-time.After(time.Second):
			t.Fatalf("задача %s первой подписки не остановилась", job.Slot)
		}
	}
	for _, job := range second.Jobs {
		if !job.Alive() {
			t.Fatalf("задача %s второй подписки должна работать", job.Slot)
		}
	}
	if got := s.LiveJobs(42); got != 3 {
		t.Fatalf("ожидали 3 живые задачи, получили %d", got)
	}
	if got := s.Running(); got != 3 {
		t.Fatalf("ожидали 3 работающих цикла, получили %d", got)
	}
}

func TestConcurrentActivateKeepsThreeJobs(t *testing.T) {
	s := NewScheduler(&fakeSender{}, zerolog.Nop())
	defer s.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Activate(42)
		}()
	}
	wg.Wait()

	waitFor(t, time.Second, func() bool { return s.Running() == 3 })
	if got := s.LiveJobs(42); got != 3 {
		t.Fatalf("ожидали 3 живые задачи, получили %d", got)
	}
}

func TestJobFiresOnceAtTrigger(t *testing.T) {
	sender := &fakeSender{}
	base := time.Date(2026, 3, 10, 9, 29, 59, 900_000_000, Moscow)
	s := NewScheduler(sender, zerolog.Nop(),
		WithClock(shiftedClock(base)),
		WithCooldown(50*time.Millisecond),
		WithPlan(DefaultPlan()[:1]),
	)
	defer s.Stop()

	s.Activate(42)
	waitFor(t, 2*time.Second, func() bool { return sender.count() == 3 })

	time.Sleep(300 * time.Millisecond)
	msgs := sender.messages()
	if len(msgs) != 3 {
		t.Fatalf("ожидали одно срабатывание (3 сообщения), получили %d", len(msgs))
	}
	for i, want := range DefaultPlan()[0].Messages {
		if msgs[i].text != want.Text {
			t.Fatalf("сообщение %d: ожидали %q, получили %q", i, want.Text, msgs[i].text)
		}
		if msgs[i].chatID != 42 {
			t.Fatalf("ожидали chat 42, получили %d", msgs[i].chatID)
		}
	}
	if s.LiveJobs(42) != 1 {
		t.Fatalf("задача должна продолжить цикл после срабатывания")
	}
}

func TestSendFailureSkipsDayAndKeepsLoop(t *testing.T) {
	plan := DefaultPlan()[:1]
	sender := &fakeSender{failOn: map[string]bool{plan[0].Messages[0].Text: true}}
	base := time.Date(2026, 3, 10, 9, 29, 59, 900_000_000, Moscow)
	s := NewScheduler(sender, zerolog.Nop(),
		WithClock(shiftedClock(base)),
		WithCooldown(10*time.Millisecond),
		WithPlan(plan),
	)
	defer s.Stop()

	s.Activate(42)
	waitFor(t, 2*time.Second, func() bool { return sender.count() == 1 })
	time.Sleep(200 * time.Millisecond)

	if got := sender.count(); got != 1 {
		t.Fatalf("после ошибки остаток рассылки должен быть пропущен, отправлено %d", got)
	}
	if s.LiveJobs(42) != 1 {
		t.Fatalf("ошибка отправки не должна останавливать задачу")
	}
}

func TestCancelledJobSendsNothing(t *testing.T) {
	sender := &fakeSender{}
	base := time.Date(2026, 3, 10, 9, 29, 59, 800_000_000, Moscow)
	s := NewScheduler(sender, zerolog.Nop(), WithClock(shiftedClock(base)), WithPlan(DefaultPlan()[:1]))
	defer s.Stop()

	set := s.Activate(42)
	if !s.Cancel(42) {
		t.Fatalf("ожидали, что задачи были отменены")
	}
	<-set.Jobs[0].Done()
	time.Sleep(300 * time.Millisecond)
	if got := sender.count(); got != 0 {
		t.Fatalf("отменённая задача не должна отправлять сообщения, отправлено %d", got)
	}
	if s.Cancel(42) {
		t.Fatalf("повторная отмена должна вернуть false")
	}
}

func TestStopWaitsForAllJobs(t *testing.T) {
	s := NewScheduler(&fakeSender{}, zerolog.Nop())
	s.Activate(1)
	s.Activate(2)
	s.Stop()
	if got := s.Running(); got != 0 {
		t.Fatalf("после Stop не должно остаться задач, осталось %d", got)
	}
}
