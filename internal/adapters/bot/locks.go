package bot

import "sync"

// chatLocks выдаёт мьютекс на chat_id и удаляет его, когда он никому не нужен.
type chatLocks struct {
	mu    sync.Mutex
	items map[int64]*chatLock
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

func newChatLocks() *chatLocks {
	return &chatLocks{items: make(map[int64]*chatLock)}
}

func (l *chatLocks) lock(chatID int64) func() {
	l.mu.Lock()
	entry, ok := l.items[chatID]
	if !ok {
		entry = &chatLock{}
		l.items[chatID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.items, chatID)
		}
		l.mu.Unlock()
	}
}

func (l *chatLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
