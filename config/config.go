// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding"

	"codeberg.org/resgenex/resgenex/resource"
	"codeberg.org/resgenex/resgenex/transcode"
)

// ConfigFileEnv names the environment variable holding the configuration file path.
const ConfigFileEnv = "RESGENEX_CONFIGFILE"

// defaultConfigFiles are tried in order when no configuration file is named.
var defaultConfigFiles = []string{"./resgenex.yaml", "./resgenex.yml"}

// Config holds the converter configuration.
type Config struct {
	Build buildInfo `yaml:"-"`

	Comments struct {
		// Policy is one of full, source-only or none.
		Policy      string                 `env:"RESGENEX_COMMENTS,overwrite"     yaml:"policy"`
		FormatFlags bool                   `env:"RESGENEX_FORMAT_FLAGS,overwrite" yaml:"formatFlags"`
		policy      resource.CommentPolicy
	} `yaml:"comments"`

	Paths struct {
		// UseSourcePath resolves resx file references against the source file's directory.
		UseSourcePath bool `env:"RESGENEX_USE_SOURCE_PATH,overwrite" yaml:"useSourcePath"`
	} `yaml:"paths"`

	PO struct {
		// Language is written as the Language header of PO files. Must be a BCP 47 tag.
		Language   string `env:"RESGENEX_PO_LANGUAGE,overwrite"    yaml:"language"`
		LineEnding string `env:"RESGENEX_PO_LINE_ENDING,overwrite" yaml:"lineEnding"`
		newline    string
	} `yaml:"po"`

	ISL struct {
		CodePage       int               `env:"RESGENEX_ISL_CODEPAGE,overwrite"    yaml:"codePage"`
		Author         string            `env:"RESGENEX_ISL_AUTHOR,overwrite"      yaml:"author"`
		DefaultSection string            `env:"RESGENEX_ISL_SECTION,overwrite"     yaml:"defaultSection"`
		LineEnding     string            `env:"RESGENEX_ISL_LINE_ENDING,overwrite" yaml:"lineEnding"`
		encoding       encoding.Encoding
		newline        string
	} `yaml:"isl"`

	Transcode struct {
		Verify bool `env:"RESGENEX_VERIFY,overwrite" yaml:"verify"`
	} `yaml:"transcode"`

	Log struct {
		Level   string   `env:"RESGENEX_LOG_LEVEL,overwrite"   yaml:"logLevel"`
		Outputs []string `env:"RESGENEX_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"RESGENEX_LOG_FORMAT,overwrite"  yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig fills the configuration from defaults, the YAML file and the
// environment, in that order.
//
// configFlag is the value of the --config flag, or empty when the flag was
// not given. Command-line overrides are applied by the caller afterwards,
// followed by Setup.
func (cfg *Config) LoadConfig(configFlag string) error {
	cfg.SetDefaults()
	cfg.Build.load()

	if err := cfg.readYAML(configFilePath(configFlag)); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	return nil
}

// Setup validates the configuration, derives its parsed values and installs
// the configured logger.
func (cfg *Config) Setup() error {
	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()
	cfg.print()

	return nil
}

// configFilePath picks the configuration file with the precedence
// --config, RESGENEX_CONFIGFILE, then the first existing default file.
func configFilePath(configFlag string) string {
	if configFlag != "" {
		return configFlag
	}

	if envVar := os.Getenv(ConfigFileEnv); envVar != "" {
		return envVar
	}

	for _, path := range defaultConfigFiles {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Generator names the program and version in generated file headers.
func (cfg *Config) Generator() string {
	return ProgramName + " " + BuildVersion
}

// Options returns the comment options passed to readers and writers.
func (cfg *Config) Options() resource.Options {
	return resource.Options{
		Comments:    cfg.Comments.policy,
		FormatFlags: cfg.Comments.FormatFlags,
	}
}

// TranscodeOptions returns everything a transcode needs. Call after Setup.
func (cfg *Config) TranscodeOptions() transcode.Options {
	return transcode.Options{
		Resource:      cfg.Options(),
		UseSourcePath: cfg.Paths.UseSourcePath,
		Verify:        cfg.Transcode.Verify,
		Generator:     cfg.Generator(),
		POLanguage:    cfg.PO.Language,
		PONewline:     cfg.PO.newline,
		ISLEncoding:   cfg.ISL.encoding,
		ISLAuthor:     cfg.ISL.Author,
		ISLSection:    cfg.ISL.DefaultSection,
		ISLNewline:    cfg.ISL.newline,
	}
}
