package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/ashn-dot-dev/sunder/pkg/util/assert"
)

func newFlagCmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().String("target", "", "")
	c.Flags().BoolP("verbose", "v", false, "")

	return c
}

func TestGetStringReturnsFlagValue(t *testing.T) {
	c := newFlagCmd()
	assert.True(t, c.Flags().Set("target", "arm64") == nil)

	assert.Equal(t, "arm64", GetString(c, "target"))
}

func TestGetStringDefaultsEmpty(t *testing.T) {
	c := newFlagCmd()
	assert.Equal(t, "", GetString(c, "target"))
}

func TestGetFlagReturnsBoolValue(t *testing.T) {
	c := newFlagCmd()
	assert.True(t, c.Flags().Set("verbose", "true") == nil)

	assert.True(t, GetFlag(c, "verbose"))
}

func TestReportBuildVersionPrefersExplicitVersion(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3"
	assert.Equal(t, "1.2.3", reportBuildVersion())
}
