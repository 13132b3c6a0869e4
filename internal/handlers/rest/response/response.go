package response

import (
	"encoding/json"
	"net/http"
)

type Error struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// ErrorJSON тело ошибки всегда {"error": "<message>"}.
func ErrorJSON(w http.ResponseWriter, status int, message string) error {
	return JSON(w, status, Error{Error: message})
}
