package builderr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs_MatchesSentinelOfSameKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Stage("compile", 2))

	assert.ErrorIs(t, err, ErrStage)
	assert.NotErrorIs(t, err, ErrConfig)
	assert.Equal(t, KindStage, KindOf(err))
}

func TestUnwrap_ReachesCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := ResourceCopy("src/view/a.fxml", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrResourceCopy)
	assert.Contains(t, err.Error(), "src/view/a.fxml")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), ExitFailure},
		{"stage propagates", Stage("compile", 4), 4},
		{"stage out of range", Stage("run", 300), ExitFailure},
		{"config", Config("resolve", "bad pattern %q", "["), ExitConfigError},
		{"tool", ToolNotFound("compile", "javac", errors.New("not found")), ExitEnvError},
		{"execution", Execution("run", "java", errors.New("wait")), ExitFailure},
		{"wrapped stage", fmt.Errorf("run: %w", Stage("test", 7)), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestError_Message(t *testing.T) {
	require.Equal(t, "compile: exited with status 1", Stage("compile", 1).Error())
	require.Equal(t, `resolve: bad pattern "["`, Config("resolve", "bad pattern %q", "[").Error())
}
