package telegram

import "strings"

// лимит Telegram в символах
const messageLimit = 4096

// splitText режет текст на части не длиннее limit рун.
// Разрез ставится по последнему переводу строки в окне, иначе ровно по лимиту.
func splitText(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return []string{text}
	}

	var parts []string
	for len(runes) > 0 {
		if len(runes) <= limit {
			parts = appendChunk(parts, runes)
			break
		}
		cut := limit
		for i := limit; i > 0; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		parts = appendChunk(parts, runes[:cut])
		runes = runes[cut:]
	}
	return parts
}

func appendChunk(parts []string, chunk []rune) []string {
	if s := strings.Trim(string(chunk), "\n"); s != "" {
		return append(parts, s)
	}
	return parts
}
