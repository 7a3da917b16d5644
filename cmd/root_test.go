package cmd

import (
	"strings"
	"testing"
)

func TestDebugFlagDefaultTrue(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "true" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "true")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestInitConfig_QuietOverridesDebug(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = true

	// Quiet takes precedence over debug
	initConfig()
}

func TestVersionTemplate(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer func() { version, commit, date = origVersion, origCommit, origDate }()

	SetVersionInfo("1.2.3", "none", "unknown")
	if got := versionTemplate(); got != "parley 1.2.3\n" {
		t.Errorf("versionTemplate() = %q", got)
	}

	SetVersionInfo("1.2.3", "abc123", "2026-08-30")
	got := versionTemplate()
	for _, want := range []string{"1.2.3", "abc123", "2026-08-30"} {
		if !strings.Contains(got, want) {
			t.Errorf("versionTemplate() = %q, missing %q", got, want)
		}
	}
}

func TestCleanCommandRegistered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "clean" {
			return
		}
	}
	t.Fatal("clean subcommand not registered")
}
