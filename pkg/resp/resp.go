package resp

import (
	"encoding/json"
	"net/http"
)

// WriteJSONResponse - пишет статус и тело в формате JSON
func WriteJSONResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// Message - тело ответа с ошибкой или сообщением
type Message struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// WriteMessage - короткий ответ вида {"message": "..."}
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, Message{Message: message})
}
