package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
)

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	v.checkName(input.Name)
	v.checkEmail(input.Email)
	v.checkPassword(input.Password)
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		writeServerError(w, err)
		return
	}
	u := &user{
		ID:           newID(),
		CreatedAt:    time.Now().UTC(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	err = app.storage.createUser(u)
	if err != nil {
		if errors.Is(err, errDuplicateEmail) {
			writeError(w, errDuplicateEmail, http.StatusBadRequest)
			return
		}
		writeServerError(w, err)
		return
	}

	if app.mailer != nil {
		// Best effort. A mail failure must not fail the registration.
		go func(u user) {
			err := app.mailer.send(u.Email, welcomeTemplate, u)
			if err != nil {
				log.Println(err)
			}
		}(*u)
	}

	writeJSON(w, http.StatusOK, u)
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	v.checkCond(input.Email != "", "email", "must be provided")
	v.checkCond(input.Password != "", "password", "must be provided")
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	u, err := app.storage.getUserByEmail(input.Email)
	if err != nil {
		writeServerError(w, err)
		return
	}
	// An unknown email and a wrong password produce the same response, so
	// login failures reveal nothing about which emails are registered.
	if u == nil || !verifyPassword(u.PasswordHash, input.Password) {
		writeError(w, errInvalidCredentials, http.StatusUnauthorized)
		return
	}

	token, err := issueToken(u.ID, []byte(app.config.jwt.secret), app.config.jwt.ttl, time.Now())
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      u.ID,
	})
}

func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	u := getUserFromRequest(r)
	writeJSON(w, http.StatusOK, u)
}

func (app *application) getUserHandler(w http.ResponseWriter, r *http.Request) {
	caller := getUserFromRequest(r)
	if r.PathValue("id") != caller.ID {
		writeError(w, errForbidden, http.StatusForbidden)
		return
	}
	u, err := app.storage.getUserByID(r.PathValue("id"))
	if err != nil {
		writeServerError(w, err)
		return
	}
	if u == nil {
		writeError(w, errNotFound, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	caller := getUserFromRequest(r)
	if r.PathValue("id") != caller.ID {
		writeError(w, errForbidden, http.StatusForbidden)
		return
	}

	var input updateUserInput
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	if input.Name != nil {
		v.checkName(*input.Name)
	}
	if input.Email != nil {
		v.checkEmail(*input.Email)
	}
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	u, err := app.storage.getUserByID(r.PathValue("id"))
	if err != nil {
		writeServerError(w, err)
		return
	}
	if u == nil {
		writeError(w, errNotFound, http.StatusNotFound)
		return
	}

	u.applyUpdate(input)
	err = app.storage.updateUser(u)
	if err != nil {
		switch {
		case errors.Is(err, errDuplicateEmail):
			writeError(w, errDuplicateEmail, http.StatusBadRequest)
		case errors.Is(err, errNotFound):
			writeError(w, errNotFound, http.StatusNotFound)
		default:
			writeServerError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, u)
}
