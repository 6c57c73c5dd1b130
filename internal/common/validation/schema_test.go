package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"animalId", "requestingTutorId"},
		"properties": map[string]interface{}{
			"animalId":          map[string]interface{}{"type": "string", "minLength": 1},
			"requestingTutorId": map[string]interface{}{"type": "string", "minLength": 1},
		},
	}
}

func TestSchemaValidator_ValidateJSON(t *testing.T) {
	v := NewSchemaValidator()
	require.NoError(t, v.Register("rank-interested-adopters", rankSchema()))

	tests := []struct {
		name      string
		document  string
		wantValid bool
		wantField string
	}{
		{
			name:      "valid",
			document:  `{"animalId":"a-1","requestingTutorId":"t-1"}`,
			wantValid: true,
		},
		{
			name:      "missing tutor",
			document:  `{"animalId":"a-1"}`,
			wantField: "requestingTutorId",
		},
		{
			name:      "wrong type",
			document:  `{"animalId":42,"requestingTutorId":"t-1"}`,
			wantField: "animalId",
		},
		{
			name:      "empty id",
			document:  `{"animalId":"","requestingTutorId":"t-1"}`,
			wantField: "animalId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateJSON("rank-interested-adopters", tt.document)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				assert.True(t, result.HasErrors(tt.wantField), "errors: %v", result.GetErrorMessages())
			}
		})
	}
}

func TestSchemaValidator_UnknownTaskTypePasses(t *testing.T) {
	v := NewSchemaValidator()

	result, err := v.ValidateJSON("unregistered", `{"anything":true}`)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.False(t, v.Has("unregistered"))
}

func TestSchemaValidator_EmptySchemaSkipped(t *testing.T) {
	v := NewSchemaValidator()

	require.NoError(t, v.Register("calculate-compatibility-score", nil))
	assert.False(t, v.Has("calculate-compatibility-score"))
}

func TestSchemaValidator_InvalidSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.Register("broken", map[string]interface{}{"type": 12})

	assert.Error(t, err)
}

func TestSchemaValidator_MalformedDocument(t *testing.T) {
	v := NewSchemaValidator()
	require.NoError(t, v.Register("rank-interested-adopters", rankSchema()))

	_, err := v.ValidateJSON("rank-interested-adopters", `{not json`)

	assert.Error(t, err)
}
