package main

import (
	"bytes"
	"os/exec"
	"path"
	"strings"

	"github.com/codelif/xdgtheme"
)

// detectTheme asks the desktop environment for its configured icon theme,
// trying dconf then gsettings, and settles for hicolor when neither
// answers.
func detectTheme() string {
	dconfPath := []string{
		"org",
		"gnome",
		"desktop",
		"interface",
		"icon-theme",
	}

	cmd := exec.Command("dconf", "read", "/"+path.Join(dconfPath...))
	output := new(bytes.Buffer)
	cmd.Stdout = output
	cmd.Run()
	if theme := cleanSettingsOutput(output.String()); theme != "" {
		return theme
	}

	basenameIndex := len(dconfPath) - 1
	schema := strings.Join(dconfPath[:basenameIndex], ".")
	key := dconfPath[basenameIndex]

	cmd = exec.Command("gsettings", "get", schema, key)
	output.Reset()
	cmd.Stdout = output
	cmd.Run()
	if theme := cleanSettingsOutput(output.String()); theme != "" {
		return theme
	}

	return xdgtheme.FallbackThemeName
}

func cleanSettingsOutput(raw string) string {
	return strings.TrimPrefix(strings.TrimSuffix(strings.Trim(raw, "\n "), "'"), "'")
}
