package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "path").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var messages = map[string]map[string]string{
	"en": {
		"invalid_encoding": "byte sequence is not valid in the configured format",
		"out_of_range":     "byte element must be an integer from 0 to 255",
		"type_mismatch":    "value has the wrong JSON type for a byte sequence",
		"trailing_data":    "unexpected data after the document",
		"too_deep":         "nesting exceeds the depth limit",
		"duplicate_key":    "duplicate key",
		"truncated":        "input exceeds the size limit",
	},
	"ja": {
		"invalid_encoding": "バイト列の形式が不正です",
		"out_of_range":     "バイト要素は0から255の整数である必要があります",
		"type_mismatch":    "バイト列として型が不正です",
		"trailing_data":    "ドキュメントの後に余分なデータがあります",
		"too_deep":         "ネストが深すぎます",
		"duplicate_key":    "キーが重複しています",
		"truncated":        "入力がサイズ上限を超えています",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	if msg, ok := messages[t.lang][code]; ok {
		if p := data["path"]; p != "" && p != "/" {
			return msg + " (" + p + ")"
		}
		return msg
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
