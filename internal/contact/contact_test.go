package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		contact string
		want    bool
	}{
		{"kofi@example.com", true},
		{"ama.mensah@mail.example.org", true},
		{"+233201234567", true},
		{"020 123 4567", true},
		{"(020) 123-4567", true},
		{"not a contact", false},
		{"@example.com", false},
		{"12345", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.contact), "contact %q", tt.contact)
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, TypeEmail, Classify("kofi@example.com"))
	assert.Equal(t, TypePhone, Classify("+233201234567"))
	// non-email free text classifies as phone, matching the send path
	// which validates before classifying
	assert.Equal(t, TypePhone, Classify("whatever"))
}
