package main

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades hashing time against brute-force resistance. 12 keeps a
// hash around a quarter second on commodity hardware.
const bcryptCost = 12

func hashPassword(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
}

func verifyPassword(hash []byte, plaintext string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plaintext)) == nil
}
