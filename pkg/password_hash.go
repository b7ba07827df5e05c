package pkg

import "golang.org/x/crypto/bcrypt"

// PasswordHashCost is lowered in tests, bcrypt with cost 14 takes around a second.
var PasswordHashCost = 14

func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return BytesToString(hashBytes), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
