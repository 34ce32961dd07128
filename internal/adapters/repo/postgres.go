package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"wellness-bot/internal/domain"
	"wellness-bot/internal/infra/metrics"
)

// Postgres хранит завершённые анкеты.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ domain.ResultArchive = (*Postgres)(nil)

// NewPostgres создаёт адаптер БД.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) connCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, 5*time.Second)
}

const schema = `
CREATE TABLE IF NOT EXISTS survey_results (
	id             BIGSERIAL PRIMARY KEY,
	chat_id        BIGINT NOT NULL,
	answers        JSONB NOT NULL,
	general_score  INT NOT NULL,
	health_score   INT NOT NULL,
	bmi            DOUBLE PRECISION,
	bmi_category   TEXT NOT NULL,
	calorie_target INT NOT NULL,
	water_target_l DOUBLE PRECISION NOT NULL,
	zones          TEXT[] NOT NULL DEFAULT '{}',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS survey_results_chat_idx ON survey_results (chat_id, created_at DESC);
`

// EnsureSchema создаёт таблицу результатов, если её нет.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()
	start := time.Now()
	_, err := p.pool.Exec(ctx, schema)
	metrics.ObserveNetworkRequest("postgres", "ensure_schema", start, err)
	if err != nil {
		return fmt.Errorf("создание схемы: %w", err)
	}
	return nil
}

// SaveResult реализует domain.ResultArchive.
func (p *Postgres) SaveResult(ctx context.Context, chatID int64, answers map[string]string, result domain.ScoreResult) error {
	payload, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("кодирование ответов: %w", err)
	}
	zones := make([]string, 0, len(result.Zones))
	for _, z := range result.Zones {
		zones = append(zones, string(z))
	}

	ctx, cancel := p.connCtx(ctx)
	defer cancel()
	start := time.Now()
	_, err = p.pool.Exec(ctx, `
INSERT INTO survey_results (chat_id, answers, general_score, health_score, bmi, bmi_category, calorie_target, water_target_l, zones)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, chatID, payload, result.GeneralScore, result.HealthScore, result.BMI, string(result.BMICategory), result.CalorieTarget, result.WaterTargetL, zones)
	metrics.ObserveNetworkRequest("postgres", "survey_results_insert", start, err)
	if err != nil {
		return fmt.Errorf("сохранение результата: %w", err)
	}
	return nil
}
