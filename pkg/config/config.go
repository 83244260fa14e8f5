// Package config loads the run configuration: defaults first, then an
// optional YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/dominguezus/imdbsentiment/pkg/textfeat"
)

// EnvPrefix is the prefix for environment overrides. Nested keys use a
// double underscore: SENTIMENT_LOGISTIC__EPOCHS overrides logistic.epochs.
const EnvPrefix = "SENTIMENT_"

// DatasetConfig points at one pre-ingested CSV split.
type DatasetConfig struct {
	Path        string `koanf:"path"`
	TextColumn  string `koanf:"text_column"`
	LabelColumn string `koanf:"label_column"`
}

// FeatureConfig mirrors textfeat.Spec in configuration form.
type FeatureConfig struct {
	Language        string `koanf:"language"`
	NGramLength     int    `koanf:"ngram_length"`
	RemoveStopwords bool   `koanf:"remove_stopwords"`
	KeepPunctuation bool   `koanf:"keep_punctuation"`
	KeepNumbers     bool   `koanf:"keep_numbers"`
	Lowercase       bool   `koanf:"lowercase"`
	MaxFeatures     int    `koanf:"max_features"`
	SublinearTF     bool   `koanf:"sublinear_tf"`
}

// Spec converts the configuration block into the immutable featurizer spec.
func (f FeatureConfig) Spec() textfeat.Spec {
	return textfeat.Spec{
		Language:        f.Language,
		NGramLength:     f.NGramLength,
		RemoveStopwords: f.RemoveStopwords,
		KeepPunctuation: f.KeepPunctuation,
		KeepNumbers:     f.KeepNumbers,
		Lowercase:       f.Lowercase,
		MaxFeatures:     f.MaxFeatures,
		SublinearTF:     f.SublinearTF,
	}
}

// LogisticConfig holds the penalized logistic regression hyperparameters.
type LogisticConfig struct {
	LearningRate float64 `koanf:"learning_rate"`
	Epochs       int     `koanf:"epochs"`
	BatchSize    int     `koanf:"batch_size"`
	L1           float64 `koanf:"l1"`
	L2           float64 `koanf:"l2"`
}

// BoostingConfig holds the gradient boosting hyperparameters.
type BoostingConfig struct {
	Trees          int     `koanf:"trees"`
	Shrinkage      float64 `koanf:"shrinkage"`
	MaxDepth       int     `koanf:"max_depth"`
	MinSamplesLeaf int     `koanf:"min_samples_leaf"`
	Subsample      float64 `koanf:"subsample"`
}

// NetworkConfig holds the neural network hyperparameters.
type NetworkConfig struct {
	HiddenUnits  int     `koanf:"hidden_units"`
	LearningRate float64 `koanf:"learning_rate"`
	Epochs       int     `koanf:"epochs"`
	BatchSize    int     `koanf:"batch_size"`
}

// Config is the full run configuration.
type Config struct {
	Train    DatasetConfig  `koanf:"train"`
	Test     DatasetConfig  `koanf:"test"`
	Output   string         `koanf:"output"`
	Backend  string         `koanf:"backend"` // "parallel" or "local"
	Workers  int            `koanf:"workers"` // 0 = GOMAXPROCS
	LogLevel string         `koanf:"log_level"`
	Progress bool           `koanf:"progress"`
	TopTerms int            `koanf:"top_terms"`
	Seed     int64          `koanf:"seed"`
	Features FeatureConfig  `koanf:"features"`
	Logistic LogisticConfig `koanf:"logistic"`
	Boosting BoostingConfig `koanf:"boosting"`
	Network  NetworkConfig  `koanf:"network"`
}

// defaultConfig returns the hyperparameters the comparison runs with when
// nothing overrides them.
func defaultConfig() *Config {
	spec := textfeat.DefaultSpec()
	return &Config{
		Train:    DatasetConfig{Path: "data/imdb_train.csv", TextColumn: "review", LabelColumn: "sentiment"},
		Test:     DatasetConfig{Path: "data/imdb_test.csv", TextColumn: "review", LabelColumn: "sentiment"},
		Output:   "out",
		Backend:  "parallel",
		Workers:  0,
		LogLevel: "info",
		Progress: true,
		TopTerms: 100,
		Seed:     1,
		Features: FeatureConfig{
			Language:        spec.Language,
			NGramLength:     spec.NGramLength,
			RemoveStopwords: spec.RemoveStopwords,
			KeepPunctuation: spec.KeepPunctuation,
			KeepNumbers:     spec.KeepNumbers,
			Lowercase:       spec.Lowercase,
			MaxFeatures:     spec.MaxFeatures,
			SublinearTF:     spec.SublinearTF,
		},
		Logistic: LogisticConfig{LearningRate: 0.1, Epochs: 20, BatchSize: 64, L1: 0, L2: 1e-4},
		Boosting: BoostingConfig{Trees: 100, Shrinkage: 0.1, MaxDepth: 3, MinSamplesLeaf: 5, Subsample: 1.0},
		Network:  NetworkConfig{HiddenUnits: 16, LearningRate: 0.05, Epochs: 10, BatchSize: 64},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment overrides apply; a named file that does not
// exist is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Train.Path == "" || c.Test.Path == "" {
		return fmt.Errorf("config: train and test dataset paths are required")
	}
	if c.Backend != "parallel" && c.Backend != "local" {
		return fmt.Errorf("config: backend must be \"parallel\" or \"local\", got %q", c.Backend)
	}
	if c.TopTerms <= 0 {
		return fmt.Errorf("config: top_terms must be positive, got %d", c.TopTerms)
	}
	if c.Logistic.Epochs <= 0 || c.Network.Epochs <= 0 {
		return fmt.Errorf("config: epochs must be positive")
	}
	if c.Boosting.Trees < 0 {
		return fmt.Errorf("config: boosting.trees must be >= 0, got %d", c.Boosting.Trees)
	}
	return nil
}
