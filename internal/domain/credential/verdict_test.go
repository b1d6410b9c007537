package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVerdictStatus(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      VerdictStatus
		wantError bool
	}{
		{
			name:      "正常系: success",
			input:     "success",
			want:      VerdictStatusSuccess,
			wantError: false,
		},
		{
			name:      "正常系: fail",
			input:     "fail",
			want:      VerdictStatusFail,
			wantError: false,
		},
		{
			name:      "異常系: 未知のステータス",
			input:     "pending",
			wantError: true,
		},
		{
			name:      "異常系: 空文字列",
			input:     "",
			wantError: true,
		},
		{
			name:      "異常系: 大文字",
			input:     "SUCCESS",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewVerdictStatus(tt.input)

			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestVerdictStatus_String(t *testing.T) {
	assert.Equal(t, "success", VerdictStatusSuccess.String())
	assert.Equal(t, "fail", VerdictStatusFail.String())
}

func TestVerdictStatus_Valid(t *testing.T) {
	assert.True(t, VerdictStatusSuccess.Valid())
	assert.True(t, VerdictStatusFail.Valid())
	assert.False(t, VerdictStatus("unknown").Valid())
	assert.False(t, VerdictStatus("").Valid())
}

func TestVerdictStatus_IsSuccess(t *testing.T) {
	assert.True(t, VerdictStatusSuccess.IsSuccess())
	assert.False(t, VerdictStatusFail.IsSuccess())
}
