package main

import (
	"net/http"
)

func composeRoutes(app *application) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", app.rootHandler)
	mux.HandleFunc("GET /health", app.healthCheckHandler)

	mux.HandleFunc("POST /auth/register", app.registerUserHandler)
	mux.HandleFunc("POST /auth/login", app.loginUserHandler)

	mux.HandleFunc("GET /users/me", app.requireAuthenticatedUser(app.getCurrentUserHandler))
	mux.HandleFunc("GET /users/{id}", app.requireAuthenticatedUser(app.getUserHandler))
	mux.HandleFunc("PATCH /users/{id}", app.requireAuthenticatedUser(app.updateUserHandler))

	mux.HandleFunc("GET /todos/{$}", app.requireAuthenticatedUser(app.getTodosHandler))
	mux.HandleFunc("POST /todos/{$}", app.requireAuthenticatedUser(app.createTodoHandler))
	mux.HandleFunc("GET /todos/{id}", app.requireAuthenticatedUser(app.getTodoHandler))
	mux.HandleFunc("PUT /todos/{id}", app.requireAuthenticatedUser(app.updateTodoHandler))
	mux.HandleFunc("DELETE /todos/{id}", app.requireAuthenticatedUser(app.deleteTodoHandler))
	mux.HandleFunc("PATCH /todos/{id}/complete", app.requireAuthenticatedUser(app.completeTodoHandler))

	var handler http.Handler = mux
	if app.config.limiter.enabled {
		handler = app.rateLimit(handler)
	}
	return app.enableCORS(handler)
}
