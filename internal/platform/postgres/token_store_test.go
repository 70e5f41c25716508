package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatewaylabs/gateway-api/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func TestMarshalExtensionRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		extension *domain.Extension
	}{
		{
			name:      "nil extension stored as NULL",
			extension: nil,
		},
		{
			name:      "empty extension",
			extension: &domain.Extension{},
		},
		{
			name: "full extension with tasks",
			extension: &domain.Extension{
				Title:       strPtr("project"),
				Description: strPtr("details"),
				Code:        "code-blob",
				Tasks: []domain.Task{
					{TaskID: "0", Input: "compute X", Output: strPtr("42")},
					{TaskID: "1", Input: "compute Y"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := marshalExtension(tt.extension)
			require.NoError(t, err)

			if tt.extension == nil {
				assert.Nil(t, data)
			}

			decoded, err := unmarshalExtension(data)
			require.NoError(t, err)
			assert.Equal(t, tt.extension, decoded)
		})
	}
}

func TestUnmarshalExtensionInvalid(t *testing.T) {
	decoded, err := unmarshalExtension([]byte("{not json"))
	assert.Error(t, err)
	assert.Nil(t, decoded)
}

func TestUnmarshalExtensionPreservesTaskOrder(t *testing.T) {
	ext := &domain.Extension{}
	for i := 0; i < 10; i++ {
		ext.AppendTask("input")
	}

	data, err := marshalExtension(ext)
	require.NoError(t, err)

	decoded, err := unmarshalExtension(data)
	require.NoError(t, err)
	require.Len(t, decoded.Tasks, 10)
	for i, task := range decoded.Tasks {
		assert.Equal(t, ext.Tasks[i].TaskID, task.TaskID)
	}
}
