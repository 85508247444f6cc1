package utils

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "parent@example.com", wantErr: false},
		{name: "valid with plus", email: "parent+kid@example.com", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "missing domain", email: "parent@", wantErr: true},
		{name: "missing at", email: "parent.example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "secret1", wantErr: false},
		{name: "exactly six", password: "sixsix", wantErr: false},
		{name: "too short", password: "five5", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNotificationContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "valid", content: "new parent joined the family!", wantErr: false},
		{name: "empty", content: "", wantErr: true},
		{name: "whitespace only", content: "   ", wantErr: true},
		{name: "at limit", content: strings.Repeat("a", 1000), wantErr: false},
		{name: "over limit", content: strings.Repeat("a", 1001), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotificationContent(tt.content)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNotificationContent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
