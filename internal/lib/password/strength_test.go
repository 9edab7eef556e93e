package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeetsStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "strong password", password: "Test123!@#", want: true},
		{name: "longer strong password", password: "Password123!@#", want: true},
		{name: "space counts as special", password: "Abcdef1 ", want: true},
		{name: "too short", password: "weak", want: false},
		{name: "seven chars otherwise strong", password: "Ab1!xyz", want: false},
		{name: "digits only", password: "12345678", want: false},
		{name: "lowercase only", password: "abcdefgh", want: false},
		{name: "uppercase only", password: "ABCDEFGH", want: false},
		{name: "specials only", password: "!@#$%^&*", want: false},
		{name: "no special", password: "Password123", want: false},
		{name: "no digit", password: "Password!@#", want: false},
		{name: "no uppercase", password: "password1!", want: false},
		{name: "no lowercase", password: "PASSWORD1!", want: false},
		{name: "empty", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MeetsStrength(tt.password))
		})
	}
}
