package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strataview/strata/internal/plugins"
)

func TestFailedStage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"contract", fmt.Errorf("%w: missing export Alloc", plugins.ErrContract), "contract"},
		{"validation", fmt.Errorf("%w: name is empty", plugins.ErrValidation), "metadata validation"},
		{"dependency", fmt.Errorf("%w: requires grid", plugins.ErrDependency), "dependency"},
		{"initialize", fmt.Errorf("%w: hook failed", plugins.ErrInitialize), "initialization"},
		{"loader", errors.New("invalid magic number"), "load"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failedStage(tt.err))
		})
	}
}
