package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	gosimpleslug "github.com/gosimple/slug"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// PublicCode builds a shareable code like "backend-intern-xK3fQ9a" for slot links.
func PublicCode(title string) string {
	s := gosimpleslug.Make(title)
	if s == "" {
		return strings.ToLower(GenerateID())
	}
	return fmt.Sprintf("%s-%s", s, GenerateID())
}

// GenerateRandomString generates a cryptographically secure random string
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to nanoid if crypto/rand fails
		id, _ := gonanoid.Generate(idAlphabet, length)
		return id
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length]
}
