package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtsi-hgi/yggdrasil/internal/config"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "yggdrasil", cmd.Use)
	assert.Contains(t, cmd.Long, "(key~=value)")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"filter", "check", "validate", "import"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestFilterCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	filterCmd, _, err := cmd.Find([]string{"filter"})
	require.NoError(t, err)

	queryFlag := filterCmd.Flags().Lookup("query")
	require.NotNil(t, queryFlag)
	assert.Equal(t, "q", queryFlag.Shorthand)

	outputFlag := filterCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	// Empty so YGGDRASIL_OUTPUT can supply the default
	assert.Equal(t, "", outputFlag.DefValue)

	for _, name := range []string{"keys", "slice", "db"} {
		assert.NotNil(t, filterCmd.Flags().Lookup(name), name)
	}
}

func TestStoreFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"filter", "validate", "import"} {
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{name})
			require.NoError(t, err)

			dbFlag := subCmd.Flags().Lookup("db")
			require.NotNil(t, dbFlag)
			assert.Equal(t, "", dbFlag.DefValue)
		})
	}
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"--format", "invalid", "check", "bool", "", "true"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out.String(), "Error [E300]")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	t.Setenv("YGGDRASIL_OUTPUT", "xml")

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"check", "bool", "", "true"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootCommand_ConfigDefaults(t *testing.T) {
	t.Setenv("YGGDRASIL_OUTPUT", "csv")
	path := writeRecords(t)

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"filter", path, "-q", "(name=control)", "--keys", "name,size"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "name,size\ncontrol,3000\n", out.String())
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		verbose bool
		debug   bool
		json    bool
	}{
		{"default", config.Config{}, false, false, false},
		{"verbose", config.Config{}, true, true, false},
		{"configured level", config.Config{LogLevel: "debug"}, false, true, false},
		{"warn level", config.Config{LogLevel: "warn"}, false, false, false},
		{"json", config.Config{LogFormat: "json"}, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := newLogger(buf, tt.cfg, tt.verbose)

			logger.Debug("opening database", "path", "records.db")
			assert.Equal(t, tt.debug, logger.Enabled(t.Context(), slog.LevelDebug))

			if !tt.debug {
				assert.Empty(t, buf.String())
				return
			}
			if tt.json {
				assert.Contains(t, buf.String(), `"msg":"opening database"`)
			} else {
				assert.Contains(t, buf.String(), "msg=\"opening database\" path=records.db")
			}
		})
	}
}
