package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"activitySignup/internal/models"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Env            string `yaml:"env" env:"ENV" env-default:"local"`
	ActivitiesFile string `yaml:"activities_file" env-default:"config/activities.yaml"`
	Storage        string `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Database       Database `yaml:"database"`
	HTTPServer     `yaml:"http_server"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Database struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env-default:"activities"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}

type activitiesFile struct {
	Activities map[string]models.Activity `yaml:"activities"`
}

// LoadActivities reads the startup roster. Every activity must arrive
// consistent: positive capacity, no duplicate emails, participants within
// capacity.
func LoadActivities(path string) (map[string]models.Activity, error) {
	var file activitiesFile

	if err := cleanenv.ReadConfig(path, &file); err != nil {
		return nil, fmt.Errorf("cannot read activities file: %w", err)
	}

	if len(file.Activities) == 0 {
		return nil, fmt.Errorf("activities file %s defines no activities", path)
	}

	for name, activity := range file.Activities {
		if activity.MaxParticipants <= 0 {
			return nil, fmt.Errorf("activity %q: max_participants must be positive", name)
		}

		if len(activity.Participants) > activity.MaxParticipants {
			return nil, fmt.Errorf("activity %q: %d participants exceed capacity %d",
				name, len(activity.Participants), activity.MaxParticipants)
		}

		seen := make(map[string]struct{}, len(activity.Participants))
		for _, email := range activity.Participants {
			if _, ok := seen[email]; ok {
				return nil, fmt.Errorf("activity %q: duplicate participant %s", name, email)
			}
			seen[email] = struct{}{}
		}

		if activity.Participants == nil {
			activity.Participants = []string{}
			file.Activities[name] = activity
		}
	}

	return file.Activities, nil
}
