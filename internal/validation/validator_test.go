package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/matrixgame/internal/model"
)

type sample struct {
	Name         string `json:"name" validate:"required,min=3,max=5"`
	Email        string `json:"email" validate:"required,mailbox"`
	Count        *int   `json:"count" validate:"required,gt=0"`
	Secret       string `json:"secret"`
	SecretRepeat string `json:"secret_repeat" validate:"eqfield=Secret"`
}

func intPtr(n int) *int { return &n }

func TestStructValid(t *testing.T) {
	ve := Struct(sample{Name: "abcd", Email: "a@b.co", Count: intPtr(1), Secret: "x", SecretRepeat: "x"})
	assert.True(t, ve.Empty())
	assert.NoError(t, ve.ErrOrNil())
}

func TestStructMessages(t *testing.T) {
	ve := Struct(sample{Name: "ab", Email: "nope", Count: intPtr(0), Secret: "x", SecretRepeat: "y"})

	assert.Equal(t, []string{"is too short (minimum is 3 characters)"}, ve.For("name"))
	assert.Equal(t, []string{model.MsgInvalid}, ve.For("email"))
	assert.Equal(t, []string{"must be greater than 0"}, ve.For("count"))
	assert.Equal(t, []string{model.MsgConfirmation}, ve.For("secret_repeat"))
}

func TestStructBlank(t *testing.T) {
	ve := Struct(sample{})

	assert.Equal(t, []string{model.MsgBlank}, ve.For("name"))
	assert.Equal(t, []string{model.MsgBlank}, ve.For("email"))
	assert.Equal(t, []string{model.MsgBlank}, ve.For("count"))
}

func TestStructTooLong(t *testing.T) {
	ve := Struct(sample{Name: "abcdef", Email: "a@b.co", Count: intPtr(2)})
	assert.Equal(t, []string{"is too long (maximum is 5 characters)"}, ve.For("name"))
}

func TestIsMailbox(t *testing.T) {
	valid := []string{"user@example.com", "first.last+tag@sub.example.org", "a@b"}
	invalid := []string{"invalid-email", "@example.com", "user@", "user@-bad.com", "us er@example.com"}

	for _, s := range valid {
		assert.True(t, IsMailbox(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsMailbox(s), s)
	}
}
