package security

import (
	"strings"
	"testing"

	"github.com/HUNTSTAR747/referred-space-server/pkg/config"
)

var testCfg = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", testCfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("right password", testCfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := VerifyPassword("wrong password", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatalf("wrong password must not match")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same password", testCfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("same password", testCfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("whatever", "not-a-hash"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
	if _, err := VerifyPassword("whatever", "$argon2i$v=19$m=8,t=1,p=1$x$y"); err == nil {
		t.Fatalf("expected error for wrong variant")
	}
}
