package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://www.formula1.com/en/results/2024/races/1233/china/practice/1", false},
		{"http", "http://localhost:8080/fp1.html", false},
		{"no scheme", "www.formula1.com/en/results", true},
		{"ftp", "ftp://example.com/results", true},
		{"no host", "https:///results", true},
		{"empty", "", true},
		{"garbage", "://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
