package notify

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wellness-bot/internal/domain"
	"wellness-bot/internal/infra/metrics"
)

const defaultCooldown = time.Second

// Job — один бесконечный ежедневный цикл отправки.
type Job struct {
	ID      uuid.UUID
	ChatID  int64
	Slot    domain.NotificationSlot
	Trigger DailyTrigger

	cancel context.CancelFunc
	done   chan struct{}
}

// Done закрывается, когда цикл задачи завершился.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Alive сообщает, работает ли ещё цикл задачи.
func (j *Job) Alive() bool {
	select {
	case <-j.done:
		return false
	default:
		return true
	}
}

// JobSet — утренняя, дневная и вечерняя задачи одного чата.
type JobSet struct {
	ChatID int64
	Jobs   []*Job
}

func (s *JobSet) cancel() {
	for _, job := range s.Jobs {
		job.cancel()
	}
}

// Option настраивает планировщик.
type Option func(*Scheduler)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithCooldown задаёт паузу после срабатывания.
func WithCooldown(d time.Duration) Option {
	return func(s *Scheduler) { s.cooldown = d }
}

// WithPlan подменяет расписание уведомлений.
func WithPlan(plan []Plan) Option {
	return func(s *Scheduler) { s.plan = plan }
}

// Scheduler владеет наборами задач по chat_id.
type Scheduler struct {
	sender   domain.Sender
	log      zerolog.Logger
	now      func() time.Time
	cooldown time.Duration
	plan     []Plan

	root context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
	live atomic.Int64

	mu   sync.Mutex
	sets map[int64]*JobSet
}

// NewScheduler создаёт планировщик.
func NewScheduler(sender domain.Sender, log zerolog.Logger, opts ...Option) *Scheduler {
	root, stop := context.WithCancel(context.Background())
	s := &Scheduler{
		sender:   sender,
		log:      log,
		now:      time.Now,
		cooldown: defaultCooldown,
		plan:     DefaultPlan(),
		root:     root,
		stop:     stop,
		sets:     make(map[int64]*JobSet),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Activate отменяет текущие задачи чата и запускает новый набор.
// Замена выполняется под блокировкой реестра, поэтому параллельные вызовы
// для одного чата не оставляют лишних задач.
func (s *Scheduler) Activate(chatID int64) *JobSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.sets[chatID]; ok {
		prev.cancel()
		s.log.Info().Int64("chat_id", chatID).Msg("notify: предыдущие задачи отменены")
	}
	set := &JobSet{ChatID: chatID, Jobs: make([]*Job, 0, len(s.plan))}
	for _, p := range s.plan {
		set.Jobs = append(set.Jobs, s.start(chatID, p))
	}
	s.sets[chatID] = set
	s.log.Info().Int64("chat_id", chatID).Int("jobs", len(set.Jobs)).Msg("notify: уведомления включены")
	return set
}

// Cancel останавливает задачи чата. Возвращает false, если их не было.
func (s *Scheduler) Cancel(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[chatID]
	if !ok {
		return false
	}
	set.cancel()
	delete(s.sets, chatID)
	return true
}

// LiveJobs считает работающие задачи текущего набора чата.
func (s *Scheduler) LiveJobs(chatID int64) int {
	s.mu.Lock()
	set, ok := s.sets[chatID]
	s.mu.Unlock()
	if !ok {
		return 0
	}
	n := 0
	for _, job := range set.Jobs {
		if job.Alive() {
			n++
		}
	}
	return n
}

// Running возвращает число работающих циклов по всем чатам, включая ещё не завершившиеся отменённые.
func (s *Scheduler) Running() int {
	return int(s.live.Load())
}

// Stop отменяет все задачи и ждёт их завершения.
func (s *Scheduler) Stop() {
	s.stop()
	s.mu.Lock()
	s.sets = make(map[int64]*JobSet)
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Scheduler) start(chatID int64, p Plan) *Job {
	ctx, cancel := context.WithCancel(s.root)
	job := &Job{
		ID:      uuid.New(),
		ChatID:  chatID,
		Slot:    p.Slot,
		Trigger: p.Trigger,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	s.live.Add(1)
	metrics.NotifyActiveJobs.Inc()
	go s.run(ctx, job, p.Messages)
	return job
}

func (s *Scheduler) run(ctx context.Context, job *Job, messages []domain.OutgoingMessage) {
	defer s.wg.Done()
	defer close(job.done)
	defer s.live.Add(-1)
	defer metrics.NotifyActiveJobs.Dec()

	logger := s.log.With().
		Int64("chat_id", job.ChatID).
		Str("slot", string(job.Slot)).
		Str("job", job.ID.String()).
		Logger()

	for {
		now := s.now()
		next := job.Trigger.Next(now)
		logger.Debug().Time("next", next).Msg("notify: ожидание срабатывания")
		if !sleep(ctx, next.Sub(now)) {
			logger.Debug().Msg("notify: задача отменена")
			return
		}
		s.fire(ctx, job, messages, logger)
		if !sleep(ctx, s.cooldown) {
			logger.Debug().Msg("notify: задача отменена")
			return
		}
	}
}

// fire отправляет сообщения по порядку. При ошибке остаток сегодняшней рассылки пропускается.
func (s *Scheduler) fire(ctx context.Context, job *Job, messages []domain.OutgoingMessage, logger zerolog.Logger) {
	for _, msg := range messages {
		if err := s.sender.SendText(ctx, job.ChatID, msg.Text, msg.Keyboard); err != nil {
			metrics.NotificationsFailed.WithLabelValues(string(job.Slot)).Inc()
			logger.Error().Err(err).Msg("notify: не удалось отправить уведомление")
			return
		}
	}
	metrics.NotificationsSent.WithLabelValues(string(job.Slot)).Inc()
}

// sleep ждёт d или отмены ctx. Возвращает false, если задача отменена.
func sleep(ctx context.Context, d time.Duration) bool {
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	return ctx.Err() == nil
}
