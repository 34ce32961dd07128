package domain

import "errors"

var (
	// ErrInstanceConflict — другой экземпляр бота уже получает обновления.
	ErrInstanceConflict = errors.New("another bot instance is receiving updates")
	// ErrSessionNotFound — у чата нет сессии анкеты.
	ErrSessionNotFound = errors.New("session not found")

	// модель вернула пустой ответ
	ErrClassifierEmpty = errors.New("classifier: empty response")
	// ответ не разобран как JSON
	ErrClassifierMalformed = errors.New("classifier: malformed response")
	// вызов модели не удался
	ErrClassifierUnavailable = errors.New("classifier: call failed")
)
