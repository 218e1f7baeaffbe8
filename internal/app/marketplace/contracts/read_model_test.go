package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"zero uses default", Page{}, Page{Limit: DefaultPageSize}},
		{"capped", Page{Limit: 500, Offset: 10}, Page{Limit: MaxPageSize, Offset: 10}},
		{"negative offset", Page{Limit: 5, Offset: -1}, Page{Limit: 5}},
		{"kept", Page{Limit: 20, Offset: 40}, Page{Limit: 20, Offset: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
