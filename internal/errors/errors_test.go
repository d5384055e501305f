package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKilnError_Error(t *testing.T) {
	err := New(ExitGeneralError, "something broke")
	if err.Error() != "something broke" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	wrapped := Wrap(ExitContainerFailed, "container create failed", errors.New("engine gone"))
	if wrapped.Error() != "container create failed: engine gone" {
		t.Errorf("unexpected wrapped message: %s", wrapped.Error())
	}
}

func TestKilnError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ExitConfigError, "config load failed", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"instance not found", InstanceNotFound("web1"), ExitInstanceNotFound},
		{"scenario not found", ScenarioNotFound("kiln.toml"), ExitScenarioNotFound},
		{"unknown driver", UnknownDriver(errors.New("no such driver")), ExitUnknownDriver},
		{"container failed", ContainerFailed("create", errors.New("boom")), ExitContainerFailed},
		{"config error", ConfigError("bad config", nil), ExitConfigError},
		{"login error", LoginError("no shell", nil), ExitLoginError},
		{"validation", ValidationError("bad name"), ExitGeneralError},
		{"plain error", errors.New("plain"), ExitGeneralError},
		{"wrapped kiln error", fmt.Errorf("outer: %w", InstanceNotFound("db1")), ExitInstanceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInstanceNotRunning(t *testing.T) {
	err := InstanceNotRunning("web1")
	if err.Error() != "instance web1 is not running" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
