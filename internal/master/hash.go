// internal/master/hash.go
//
// Password hashing boundary.
//
// Every password at rest is a bcrypt hash; bcrypt salts per call, so two
// admins choosing the same password never produce the same stored value.
// Nothing outside this file touches bcrypt, and plaintext passwords never
// leave these two functions.
package master

import "golang.org/x/crypto/bcrypt"

// dummyHash is compared against when the username does not exist, so the
// unknown-user path costs the same as a wrong-password path.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// HashPassword produces a salted bcrypt hash of the plaintext.
func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// verifyPassword reports whether plain matches the stored hash.  Plain
// equality is never used here.
func verifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
