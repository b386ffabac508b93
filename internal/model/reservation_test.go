package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    GuestCount
		wantErr bool
	}{
		{`4`, 4, false},
		{`"6"`, 6, false},
		{`" 2 "`, 2, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"many"`, 0, true},
		{`2.5`, 0, true},
		{`2147483647`, 2147483647, false},
		{`"-2147483648"`, -2147483648, false},
		{`3000000000`, 0, true},
		{`"3000000000"`, 0, true},
		{`-3000000000`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var in NewReservation
			err := json.Unmarshal([]byte(`{"name":"x","guests":`+tt.in+`}`), &in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Guests)
		})
	}
}
