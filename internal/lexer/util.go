package lexer

// ===== Классификаторы =====
// Только ASCII и без локали: поведение не зависит от окружения.

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentStartByte(b byte) bool {
	return b == '_' || isLetter(b)
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}
