package survey

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"wellness-bot/internal/domain"
)

// Имена переходов машины состояний.
const (
	transitionOpen     = "open"
	transitionBegin    = "begin"
	transitionAnswer   = "answer"
	transitionComplete = "complete"
	transitionStay     = "stay"
)

var allStates = []string{
	string(domain.StateMenu),
	string(domain.StateInQuestion),
	string(domain.StateFinal),
}

func newMachine(current domain.SessionState) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{Name: transitionOpen, Src: allStates, Dst: string(domain.StateMenu)},
			{Name: transitionBegin, Src: allStates, Dst: string(domain.StateInQuestion)},
			{Name: transitionAnswer, Src: []string{string(domain.StateInQuestion)}, Dst: string(domain.StateInQuestion)},
			{Name: transitionComplete, Src: []string{string(domain.StateInQuestion)}, Dst: string(domain.StateFinal)},
			{Name: transitionStay, Src: []string{string(domain.StateFinal)}, Dst: string(domain.StateFinal)},
		},
		fsm.Callbacks{},
	)
}

// transition применяет переход к сохранённому состоянию. Переход в то же
// состояние ошибкой не считается.
func transition(ctx context.Context, from domain.SessionState, name string) (domain.SessionState, error) {
	machine := newMachine(from)
	if err := machine.Event(ctx, name); err != nil {
		var same fsm.NoTransitionError
		if !errors.As(err, &same) {
			return from, fmt.Errorf("переход %q из %q: %w", name, from, err)
		}
	}
	return domain.SessionState(machine.Current()), nil
}
