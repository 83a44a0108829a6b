package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil recommend service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Corpus: &mockCorpusService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingRecommendService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Recommend: &mockRecommendService{},
			Corpus:    &mockCorpusService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   Ports
		wantErr error
	}{
		{"empty", Ports{}, ErrMissingRecommendService},
		{"missing corpus", Ports{Recommend: &mockRecommendService{}}, ErrMissingCorpusService},
		{"required set", Ports{Recommend: &mockRecommendService{}, Corpus: &mockCorpusService{}}, nil},
		{"all set", Ports{Recommend: &mockRecommendService{}, Corpus: &mockCorpusService{}, Settings: &mockSettingsService{}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
