package models

// ChatState tracks where a chat is within a conversation flow. TempData
// survives JSON round-trips through the state store, so numeric values
// may come back as float64.
type ChatState struct {
	ChatID      int64
	CurrentStep string
	TempData    map[string]interface{}
}

func (s *ChatState) GetInt64(key string) int64 {
	if s.TempData == nil {
		return 0
	}
	val, ok := s.TempData[key]
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}

func (s *ChatState) GetInt(key string) int {
	return int(s.GetInt64(key))
}

func (s *ChatState) GetFloat64(key string) float64 {
	if s.TempData == nil {
		return 0
	}
	val, ok := s.TempData[key]
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func (s *ChatState) GetString(key string) string {
	if s.TempData == nil {
		return ""
	}
	val, ok := s.TempData[key]
	if !ok {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func (s *ChatState) GetStrings(key string) []string {
	if s.TempData == nil {
		return nil
	}
	val, ok := s.TempData[key]
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case []string:
		return v
	case []interface{}:
		var out []string
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

func (s *ChatState) GetBool(key string) bool {
	if s.TempData == nil {
		return false
	}
	val, ok := s.TempData[key]
	if !ok {
		return false
	}
	b, ok := val.(bool)
	return ok && b
}
