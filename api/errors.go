package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// Stable error kinds surfaced to clients. Handlers pick the matching status
// code; internal causes (store errors, parse errors) are logged server-side
// and never appear in a response body.
var (
	errDuplicateEmail     = errors.New("a user with this email already exists")
	errInvalidCredentials = errors.New("incorrect email or password")
	errUnauthenticated    = errors.New("invalid or expired token")
	errForbidden          = errors.New("you are not allowed to access this resource")
	errNotFound           = errors.New("resource not found")
	errInternal           = errors.New("internal server error")
)

func composeJSONError(err error) string {
	jsonError := map[string]string{
		"error": err.Error(),
	}
	result, err := json.Marshal(jsonError)
	if err != nil {
		log.Println(err)
		return ""
	}
	return string(result)
}

func writeError(w http.ResponseWriter, err error, statusCode int) {
	h := w.Header()
	h.Del("Content-Length")
	h.Set("Content-Type", "application/json")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	fmt.Fprintln(w, composeJSONError(err))
}

func writeServerError(w http.ResponseWriter, err error) {
	log.Println(err)
	writeError(w, errInternal, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	js, err := json.Marshal(data)
	if err != nil {
		writeServerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(js)
}
