package main

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

// storage is the persistence boundary. The postgres implementation below is
// the production one; tests use an in-memory fake with the same semantics.
//
// Getters return (nil, nil) when no record exists. Mutations on a missing
// record return errNotFound so repeated deletes stay a clean 404.
type storage interface {
	createUser(u *user) error
	getUserByEmail(email string) (*user, error)
	getUserByID(id string) (*user, error)
	updateUser(u *user) error

	createTodo(t *todo) error
	getTodoByID(id string) (*todo, error)
	getTodosByOwner(ownerID string, limit, skip int) ([]todo, error)
	updateTodo(t *todo) error
	deleteTodo(id string) error
}

func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConnections)
	db.SetMaxIdleConns(cfg.db.maxIdleConnections)
	db.SetConnMaxIdleTime(cfg.db.maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash BYTEA NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);
	CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL REFERENCES users (id),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		priority INTEGER NOT NULL DEFAULT 1,
		due_date TIMESTAMPTZ
	);`
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := db.ExecContext(ctx, query)
	return err
}

type postgresStorage struct {
	db *sql.DB
}

func newPostgresStorage(db *sql.DB) *postgresStorage {
	return &postgresStorage{
		db: db,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (s *postgresStorage) createUser(u *user) error {
	query := `INSERT INTO users (id, created_at, name, email, password_hash, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(ctx, query, u.ID, u.CreatedAt, u.Name, u.Email, u.PasswordHash, u.IsActive)
	if isUniqueViolation(err) {
		return errDuplicateEmail
	}
	return err
}

func (s *postgresStorage) getUserByEmail(email string) (*user, error) {
	query := `SELECT id, created_at, name, email, password_hash, is_active
			  FROM users
			  WHERE email = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, email)
	var u user
	err := row.Scan(&u.ID, &u.CreatedAt, &u.Name, &u.Email, &u.PasswordHash, &u.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}
	return &u, nil
}

func (s *postgresStorage) getUserByID(id string) (*user, error) {
	query := `SELECT id, created_at, name, email, password_hash, is_active
			  FROM users
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, id)
	var u user
	err := row.Scan(&u.ID, &u.CreatedAt, &u.Name, &u.Email, &u.PasswordHash, &u.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}
	return &u, nil
}

func (s *postgresStorage) updateUser(u *user) error {
	query := `UPDATE users SET name = $1, email = $2, password_hash = $3, is_active = $4
			  WHERE id = $5`
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := s.db.ExecContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.IsActive, u.ID)
	if isUniqueViolation(err) {
		return errDuplicateEmail
	}
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errNotFound
	}
	return nil
}

func (s *postgresStorage) createTodo(t *todo) error {
	query := `INSERT INTO todos (id, owner_id, created_at, updated_at, title, description, is_completed, priority, due_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(ctx, query, t.ID, t.OwnerID, t.CreatedAt, t.UpdatedAt, t.Title, t.Description, t.IsCompleted, t.Priority, t.DueDate)
	return err
}

func (s *postgresStorage) getTodoByID(id string) (*todo, error) {
	query := `SELECT id, owner_id, created_at, updated_at, title, description, is_completed, priority, due_date
			  FROM todos
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, id)
	var t todo
	err := row.Scan(&t.ID, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt, &t.Title, &t.Description, &t.IsCompleted, &t.Priority, &t.DueDate)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}
	return &t, nil
}

func (s *postgresStorage) getTodosByOwner(ownerID string, limit, skip int) ([]todo, error) {
	query := `SELECT id, owner_id, created_at, updated_at, title, description, is_completed, priority, due_date
			  FROM todos
			  WHERE owner_id = $1
			  ORDER BY created_at, id
			  LIMIT $2 OFFSET $3`
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query, ownerID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []todo{}
	for rows.Next() {
		var t todo
		err := rows.Scan(&t.ID, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt, &t.Title, &t.Description, &t.IsCompleted, &t.Priority, &t.DueDate)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (s *postgresStorage) updateTodo(t *todo) error {
	query := `UPDATE todos SET updated_at = $1, title = $2, description = $3, is_completed = $4, priority = $5, due_date = $6
			  WHERE id = $7`
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := s.db.ExecContext(ctx, query, t.UpdatedAt, t.Title, t.Description, t.IsCompleted, t.Priority, t.DueDate, t.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errNotFound
	}
	return nil
}

func (s *postgresStorage) deleteTodo(id string) error {
	query := `DELETE FROM todos
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errNotFound
	}
	return nil
}
