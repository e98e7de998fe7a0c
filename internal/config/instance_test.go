package config

import (
	"math"
	"os"
	"testing"
)

func TestIsInstanceRunning(t *testing.T) {
	t.Setenv(DirEnvVar, t.TempDir())

	// No record yet
	running, info, err := IsInstanceRunning()
	if err != nil {
		t.Fatalf("IsInstanceRunning() error: %v", err)
	}
	if running || info != nil {
		t.Errorf("IsInstanceRunning() = %v, %v with no record, want false, nil", running, info)
	}

	// Live record: our own PID is certainly alive
	if err := SaveInstanceInfo(NewInstanceInfo(os.Getpid())); err != nil {
		t.Fatalf("SaveInstanceInfo() error: %v", err)
	}

	running, info, err = IsInstanceRunning()
	if err != nil {
		t.Fatalf("IsInstanceRunning() error: %v", err)
	}
	if !running {
		t.Error("IsInstanceRunning() = false for a live PID, want true")
	}
	if info == nil || info.PID != os.Getpid() {
		t.Errorf("IsInstanceRunning() info = %+v, want PID %d", info, os.Getpid())
	}

	if err := RemoveInstanceInfo(); err != nil {
		t.Fatalf("RemoveInstanceInfo() error: %v", err)
	}
}

func TestIsInstanceRunningCleansStaleRecord(t *testing.T) {
	t.Setenv(DirEnvVar, t.TempDir())

	// PIDs above the kernel's pid_max cannot exist
	if err := SaveInstanceInfo(NewInstanceInfo(math.MaxInt32)); err != nil {
		t.Fatalf("SaveInstanceInfo() error: %v", err)
	}

	running, _, err := IsInstanceRunning()
	if err != nil {
		t.Fatalf("IsInstanceRunning() error: %v", err)
	}
	if running {
		t.Error("IsInstanceRunning() = true for a dead PID, want false")
	}

	// The stale record is removed
	path, err := InstanceFile()
	if err != nil {
		t.Fatalf("InstanceFile() error: %v", err)
	}
	if FileExists(path) {
		t.Error("stale instance.yaml was not cleaned up")
	}
}
