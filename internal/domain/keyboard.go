package domain

// KeyboardKind задаёт вид клавиатуры под сообщением.
type KeyboardKind int

const (
	// KeyboardNone оставляет текущую клавиатуру клиента без изменений.
	KeyboardNone KeyboardKind = iota
	KeyboardReply
	KeyboardRemove
	KeyboardLink
)

// Keyboard — набор подсказанных ответов (или ссылка), прикладываемый к сообщению.
type Keyboard struct {
	Kind    KeyboardKind
	Rows    [][]string
	OneTime bool
	Label   string
	URL     string
}

// ReplyKeyboard собирает клавиатуру с вариантами ответов.
func ReplyKeyboard(oneTime bool, rows ...[]string) Keyboard {
	return Keyboard{Kind: KeyboardReply, Rows: rows, OneTime: oneTime}
}

// RemoveKeyboard убирает клавиатуру.
func RemoveKeyboard() Keyboard {
	return Keyboard{Kind: KeyboardRemove}
}

// LinkKeyboard строит одну inline-кнопку со ссылкой.
func LinkKeyboard(label, url string) Keyboard {
	return Keyboard{Kind: KeyboardLink, Label: label, URL: url}
}

// Options возвращает все варианты ответа в порядке строк.
func (k Keyboard) Options() []string {
	var out []string
	for _, row := range k.Rows {
		out = append(out, row...)
	}
	return out
}

// OutgoingMessage — сообщение с необязательной клавиатурой.
type OutgoingMessage struct {
	Text     string
	Keyboard Keyboard
}

// ScaleKeyboard строит шкалу 0–5 в одну строку.
func ScaleKeyboard() Keyboard {
	return ReplyKeyboard(true, []string{"0", "1", "2", "3", "4", "5"})
}
