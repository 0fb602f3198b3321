package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCidrs(t *testing.T) {
	tests := []struct {
		name             string
		cidrs            []string
		expectedNetworks []string
		expectedWarnings int
	}{
		{
			name:             "bare address gets a host mask",
			cidrs:            []string{"10.0.0.4"},
			expectedNetworks: []string{"10.0.0.4/32"},
		},
		{
			name:             "network range",
			cidrs:            []string{"192.168.0.0/24"},
			expectedNetworks: []string{"192.168.0.0/24"},
		},
		{
			name:             "invalid entries are skipped with a warning",
			cidrs:            []string{"10.0.0.0/8", "not-a-cidr", "300.0.0.1"},
			expectedNetworks: []string{"10.0.0.0/8"},
			expectedWarnings: 2,
		},
		{
			name: "empty input",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			networks, warnings, err := ParseCidrs(tt.cidrs)
			require.NoError(t, err)
			require.Len(t, networks, len(tt.expectedNetworks))
			for i, network := range networks {
				assert.Equal(t, tt.expectedNetworks[i], network.String())
			}
			assert.Len(t, warnings, tt.expectedWarnings)
		})
	}
}
