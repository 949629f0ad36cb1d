// Package config persists per-user settings between runs.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const fileName = ".flaskstudio.yaml"

// Settings are the remembered preferences for the last-used project. Every
// field has a working default; a missing or corrupt settings file is never an
// error.
type Settings struct {
	ProjectPath string `yaml:"project_path"`
	Port        int    `yaml:"port"`
	RunMethod   string `yaml:"run_method"`
	AppOverride string `yaml:"app_override"`
	Debug       bool   `yaml:"debug"`
	Python      string `yaml:"python"`
}

// Defaults returns the settings used when nothing has been saved yet.
func Defaults() Settings {
	return Settings{
		Port:      5000,
		RunMethod: "flask-run",
		Debug:     true,
	}
}

// DefaultPath is the settings file location in the user's home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return fileName
	}
	return filepath.Join(home, fileName)
}

// Load reads settings from path. Any failure, a missing file, unreadable
// yaml, a bad value, degrades to Defaults.
func Load(path string) Settings {
	s := Defaults()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("port", s.Port)
	v.SetDefault("run_method", s.RunMethod)
	v.SetDefault("debug", s.Debug)

	if err := v.ReadInConfig(); err != nil {
		return s
	}

	s.ProjectPath = v.GetString("project_path")
	s.Port = v.GetInt("port")
	s.RunMethod = v.GetString("run_method")
	s.AppOverride = v.GetString("app_override")
	s.Debug = v.GetBool("debug")
	s.Python = v.GetString("python")

	if s.Port <= 0 || s.Port > 65535 {
		s.Port = Defaults().Port
	}
	if s.RunMethod != "flask-run" && s.RunMethod != "direct" {
		s.RunMethod = Defaults().RunMethod
	}
	return s
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
