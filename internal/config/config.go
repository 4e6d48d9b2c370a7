package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Inputs struct {
		QuestionsCSV  string `yaml:"questions_csv"`
		FlashcardsCSV string `yaml:"flashcards_csv"`
		QuizCSV       string `yaml:"quiz_csv"`
		ExamPDF       string `yaml:"exam_pdf"`
	} `yaml:"inputs"`
	Output struct {
		DataDir       string `yaml:"data_dir"`
		PublicDataDir string `yaml:"public_data_dir"`
	} `yaml:"output"`
	Signs struct {
		AssetsSourceDir string `yaml:"assets_source_dir"`
		AssetsPublicDir string `yaml:"assets_public_dir"`
		ImagesSourceDir string `yaml:"images_source_dir"`
		ImagesPublicDir string `yaml:"images_public_dir"`
	} `yaml:"signs"`
	OCR struct {
		Lang         string `yaml:"lang"`
		MinTextChars int    `yaml:"min_text_chars"`
		Timeout      string `yaml:"timeout"`
	} `yaml:"ocr"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Load reads YAML config from path and fills in defaults for the fields the
// pipelines always need.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a config usable without a config file.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Inputs.QuestionsCSV == "" {
		c.Inputs.QuestionsCSV = "data/questions.csv"
	}
	if c.Inputs.FlashcardsCSV == "" {
		c.Inputs.FlashcardsCSV = "data/signs.flashcards.csv"
	}
	if c.Inputs.QuizCSV == "" {
		c.Inputs.QuizCSV = "data/signs.quiz.csv"
	}
	if c.Output.DataDir == "" {
		c.Output.DataDir = "data"
	}
	if c.Output.PublicDataDir == "" {
		c.Output.PublicDataDir = "public/data"
	}
	if c.Signs.AssetsSourceDir == "" {
		c.Signs.AssetsSourceDir = "assets/signs"
	}
	if c.Signs.AssetsPublicDir == "" {
		c.Signs.AssetsPublicDir = "public/assets/signs"
	}
	if c.Signs.ImagesSourceDir == "" {
		c.Signs.ImagesSourceDir = "assets/sign_images_by_id"
	}
	if c.Signs.ImagesPublicDir == "" {
		c.Signs.ImagesPublicDir = "public/assets/sign_images_by_id"
	}
	if c.OCR.Lang == "" {
		c.OCR.Lang = "ara"
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
