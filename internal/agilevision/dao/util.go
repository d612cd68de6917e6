// Вспомогательные функции DAO: генерация идентификаторов и работа с паролями.
package dao

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/sethvargo/go-password/password"
	"golang.org/x/crypto/pbkdf2"
)

const passwordHashIterations = 260000

func GenUUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

func GenPassword() string {
	return password.MustGenerate(12, 6, 0, false, false)
}

// Генерация хэша пароля для базы
func GenPasswordHash(pass string) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	salt := make([]rune, 32)
	for i := range salt {
		nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		salt[i] = letters[nBig.Int64()]
	}

	return fmt.Sprintf("pbkdf2_sha256$%d$%s$%s",
		passwordHashIterations,
		string(salt),
		base64.StdEncoding.EncodeToString(pbkdf2.Key([]byte(pass), []byte(string(salt)), passwordHashIterations, 32, sha256.New)),
	)
}

// CheckPassword сверяет пароль с хэшем вида pbkdf2_sha256$<iter>$<salt>$<hash>.
func CheckPassword(pass, hash string) bool {
	ss := strings.Split(hash, "$")
	if len(ss) != 4 || ss[0] != "pbkdf2_sha256" {
		return false
	}

	iterations, err := strconv.Atoi(ss[1])
	if err != nil || iterations <= 0 {
		return false
	}

	computed := base64.StdEncoding.EncodeToString(pbkdf2.Key([]byte(pass), []byte(ss[2]), iterations, 32, sha256.New))
	return subtle.ConstantTimeCompare([]byte(computed), []byte(ss[3])) == 1
}
