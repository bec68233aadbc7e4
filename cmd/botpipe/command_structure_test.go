package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRootCommand_InitAndExecute tests root command initialization
func TestRootCommand_InitAndExecute(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	assert.NotNil(t, rootCmd)
	assert.Equal(t, "botpipe", rootCmd.Use)

	os.Args = []string{"botpipe", "--help"}
	err := rootCmd.Execute()
	assert.NoError(t, err)
}

// TestRootCommand_HasSubcommands tests that the expected subcommands are registered
func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := map[string]bool{
		"start":    false,
		"validate": false,
		"version":  false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}

	for name, found := range expected {
		assert.True(t, found, "command %s should be registered", name)
	}
}

// TestAllCommands_HaveUsage tests all commands have usage info
func TestAllCommands_HaveUsage(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		assert.NotEmpty(t, cmd.Use, "command %s should have usage", cmd.Name())
		assert.NotEmpty(t, cmd.Short, "command %s should have short description", cmd.Name())
	}
}

// TestValidateCommandFlags tests validate command flags
func TestValidateCommandFlags(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "validate" {
			assert.NotNil(t, cmd.Flags().Lookup("config"), "validate command should have config flag")
			assert.NotNil(t, cmd.Flags().Lookup("json"), "validate command should have json flag")
			return
		}
	}
	t.Fatal("validate command not found")
}

// TestStartCommandFlags tests start command flags
func TestStartCommandFlags(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "start" {
			assert.NotNil(t, cmd.Flags().Lookup("config"), "start command should have config flag")
			return
		}
	}
	t.Fatal("start command not found")
}
