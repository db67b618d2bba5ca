// Package config loads the configuration of the cozy-avatar command: the
// default options of the generated avatars and the logging settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"text/template"

	"github.com/cozy/cozy-avatar/pkg/avatar"
	"github.com/cozy/cozy-avatar/pkg/logger"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Filename is the default configuration filename that cozy-avatar
// search for.
const Filename = "cozy-avatar"

// Paths is the list of directories used to search for a
// configuration file
var Paths = []string{
	".",
	".cozy",
	"$HOME/.cozy",
	"/etc/cozy",
}

// FS is the filesystem used to search and read the configuration files.
var FS = afero.NewOsFs()

// ErrInvalidShape is returned for an unknown shape name.
var ErrInvalidShape = errors.New("invalid shape")

var config *Config

// Config contains the configuration values of the application
type Config struct {
	Avatar    Avatar `mapstructure:"avatar"`
	Log       Log    `mapstructure:"log"`
	CacheSize int    `mapstructure:"cache_size"`
}

// Log contains the logging configuration.
type Log struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Avatar contains the default options of the generated avatars.
type Avatar struct {
	Width    float64 `mapstructure:"width"`
	Height   float64 `mapstructure:"height"`
	TextSize float64 `mapstructure:"text_size"`

	Shape  string  `mapstructure:"shape"`
	Radius float64 `mapstructure:"radius"`

	Border      float64 `mapstructure:"border"`
	ShadeFactor float64 `mapstructure:"shade_factor"`

	Background string   `mapstructure:"background"`
	TextColor  string   `mapstructure:"text_color"`
	Palette    []string `mapstructure:"palette"`
	Random     bool     `mapstructure:"random"`

	UpperCase     bool `mapstructure:"upper_case"`
	FirstCharOnly bool `mapstructure:"first_char_only"`
	DigitOnly     bool `mapstructure:"digit_only"`
	AlphaNumOnly  bool `mapstructure:"alpha_num_only"`

	Bold   bool   `mapstructure:"bold"`
	Italic bool   `mapstructure:"italic"`
	Font   string `mapstructure:"font"`

	// Density enables the device units when it is positive.
	Density   float64 `mapstructure:"density"`
	FontScale float64 `mapstructure:"font_scale"`
}

// GetConfig returns the configured instance of Config
func GetConfig() *Config {
	if config == nil {
		v := viper.New()
		applyDefaults(v)
		if err := UseViper(v); err != nil {
			panic(err)
		}
	}
	return config
}

// Setup Viper to read the environment and the optional config file
func Setup(cfgFile string) (err error) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("cozy_avatar")
	viper.AutomaticEnv()
	applyDefaults(viper.GetViper())

	var cfgFiles []string
	if cfgFile == "" {
		cfgFiles, err = findConfigFiles(Filename)
		if err != nil {
			return err
		}
	} else {
		cfgFiles = []string{cfgFile}
	}

	if len(cfgFiles) == 0 {
		return UseViper(viper.GetViper())
	}

	logger.WithNamespace("config").Debugf("Using config files: %s", cfgFiles)

	for _, cfgFile = range cfgFiles {
		dest, err := renderConfigFile(cfgFile)
		if err != nil {
			return err
		}

		cfgFile = regexp.MustCompile(`\.local$`).ReplaceAllString(cfgFile, "")
		if ext := filepath.Ext(cfgFile); len(ext) > 0 {
			viper.SetConfigType(ext[1:])
		}
		if err := viper.MergeConfig(dest); err != nil {
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				logger.WithNamespace("config").
					Errorf("Failed to read cozy-avatar configurations from %s", cfgFile)
			}
			return err
		}
	}

	return UseViper(viper.GetViper())
}

// renderConfigFile executes the configuration file as a template, with the
// environment variables and the number of CPUs available.
func renderConfigFile(cfgFile string) (*bytes.Buffer, error) {
	raw, err := afero.ReadFile(FS, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("Unable to open configuration file %s: %w", cfgFile, err)
	}

	tmplName := filepath.Base(cfgFile)
	tmpl, err := template.New(tmplName).
		Option("missingkey=zero").
		Funcs(numericFuncsMap).
		Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("Unable to parse configuration file template %s: %w", cfgFile, err)
	}

	dest := new(bytes.Buffer)
	ctxt := &struct {
		Env    map[string]string
		NumCPU int
	}{
		Env:    envMap(),
		NumCPU: runtime.NumCPU(),
	}
	if err := tmpl.ExecuteTemplate(dest, tmplName, ctxt); err != nil {
		return nil, fmt.Errorf("Template error for config file %s: %w", cfgFile, err)
	}
	return dest, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("cache_size", 256)
	v.SetDefault("avatar.width", avatar.Auto)
	v.SetDefault("avatar.height", avatar.Auto)
	v.SetDefault("avatar.text_size", avatar.Auto)
	v.SetDefault("avatar.shape", avatar.RectShape.String())
	v.SetDefault("avatar.radius", 0)
	v.SetDefault("avatar.border", 0)
	v.SetDefault("avatar.shade_factor", avatar.DefaultShadeFactor)
	v.SetDefault("avatar.background", avatar.FormatColor(avatar.Gray))
	v.SetDefault("avatar.text_color", avatar.FormatColor(avatar.White))
	v.SetDefault("avatar.density", 0)
	v.SetDefault("avatar.font_scale", 1)
}

func envMap() map[string]string {
	env := make(map[string]string)
	for _, i := range os.Environ() {
		sep := strings.Index(i, "=")
		env[i[0:sep]] = i[sep+1:]
	}
	return env
}

// UseViper sets the configured instance of Config
func UseViper(v *viper.Viper) error {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("Unable to decode the configuration: %w", err)
	}
	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return err
	}
	if _, err := avatar.ParseShapeKind(cfg.Avatar.Shape); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidShape, err)
	}
	config = cfg
	return nil
}

// UseTestConfig sets a configuration with only the default values.
func UseTestConfig() *Config {
	v := viper.New()
	applyDefaults(v)
	if err := UseViper(v); err != nil {
		panic(err)
	}
	return config
}

// FindConfigFile search in the Paths directories for the file with the given
// name. It returns an error if it cannot find it or if an error occurs while
// searching.
func FindConfigFile(name string) (string, error) {
	for _, cp := range Paths {
		filename := filepath.Join(os.ExpandEnv(cp), name)
		ok, err := afero.Exists(FS, filename)
		if err != nil {
			return "", err
		}
		if ok {
			return filename, nil
		}
	}
	return "", fmt.Errorf("Could not find config file %q", name)
}

// findConfigFiles search in the Paths directories for the first existing directory,
// then look for supported Viper file for both .ext and .ext.local version, the later
// taking precedence.
func findConfigFiles(name string) ([]string, error) {
	var configFiles []string
	configFile := ""
	for _, ext := range viper.SupportedExts {
		configFile, _ = FindConfigFile(name + "." + ext)
		if configFile != "" {
			break
		}
	}
	if configFile == "" {
		return nil, nil
	}

	configFiles = append(configFiles, configFile)

	configFile += ".local"
	ok, _ := afero.Exists(FS, configFile)
	if ok {
		configFiles = append(configFiles, configFile)
	}

	return configFiles, nil
}
