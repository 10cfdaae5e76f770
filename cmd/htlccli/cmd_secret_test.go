package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/htlc/weavetest/assert"
	"github.com/iov-one/htlc/x/escrow"
)

func TestGenSecret(t *testing.T) {
	dir, err := ioutil.TempDir("", "htlccli")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "secret.json")

	var output bytes.Buffer
	if err := cmdGenSecret(nil, &output, []string{"-save", path}); err != nil {
		t.Fatalf("cannot generate secret: %s", err)
	}
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	assert.Equal(t, 2, len(lines))
	secret := fromHex(t, strings.TrimPrefix(lines[0], "secret: "))
	hash := fromHex(t, strings.TrimPrefix(lines[1], "hash: "))
	assert.Equal(t, secretSize, len(secret))
	assert.Equal(t, escrow.Hash(secret), hash)

	raw, err := ioutil.ReadFile(path)
	assert.Nil(t, err)
	var sf secretFile
	assert.Nil(t, json.Unmarshal(raw, &sf))
	assert.Equal(t, hex.EncodeToString(secret), sf.Secret)
	assert.Equal(t, hex.EncodeToString(hash), sf.Hash)

	if err := cmdGenSecret(nil, &output, []string{"-save", path}); err == nil {
		t.Fatal("secret file must not be overwritten")
	}
}

func TestHashAndVerify(t *testing.T) {
	secret := hex.EncodeToString([]byte("my secret"))

	var output bytes.Buffer
	if err := cmdHash(nil, &output, []string{"-secret", secret}); err != nil {
		t.Fatalf("cannot hash: %s", err)
	}
	hash := strings.TrimSpace(output.String())
	assert.Equal(t, hex.EncodeToString(escrow.Hash([]byte("my secret"))), hash)

	output.Reset()
	if err := cmdVerify(nil, &output, []string{"-secret", secret, "-hash", hash}); err != nil {
		t.Fatalf("cannot verify: %s", err)
	}
	assert.Equal(t, "secret matches\n", output.String())

	other := hex.EncodeToString([]byte("other secret"))
	if err := cmdVerify(nil, &output, []string{"-secret", other, "-hash", hash}); err == nil {
		t.Fatal("want an error for a wrong secret")
	}
}

func fromHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
