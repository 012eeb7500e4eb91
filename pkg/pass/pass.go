package pass

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Cost - фиксированный work factor bcrypt
const Cost = 10

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// HashPassword - возвращает bcrypt хэш с солью внутри
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword - сравнивает пароль с хэшем. Битый хэш дает false.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyDummy - тратит столько же времени, сколько VerifyPassword,
// когда сравнивать не с чем (пользователь не найден)
func VerifyDummy(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), Cost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
