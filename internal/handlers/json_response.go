package handlers

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message})
}

func writeDeleted(w http.ResponseWriter, resource, id string) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": resource + " deleted successfully",
		"id":      id,
	})
}
