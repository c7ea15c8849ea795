package account

import (
	"math/rand"
	"strconv"
)

var placeholderWords = []string{"cat", "dog", "tiger", "shark", "rhino", "elephant", "mouse"}

// placeholderUsername builds a human-readable stand-in username (word plus
// a number) for sign-ups that leave the field empty. Uniqueness is handled
// by the caller, which retries against the store.
func placeholderUsername() string {
	word := placeholderWords[rand.Intn(len(placeholderWords))]
	return word + strconv.Itoa(rand.Intn(1000)+1)
}
