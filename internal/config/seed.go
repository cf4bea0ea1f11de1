package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the initial catalog and account set consumed by the init
// command.
type Seed struct {
	Products []SeedProduct `yaml:"products"`
	Accounts []SeedAccount `yaml:"accounts"`
}

type SeedProduct struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Price       string `yaml:"price"`
	Stock       int    `yaml:"stock"`
}

type SeedAccount struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Address  string `yaml:"address"`
}

// LoadSeed parses the YAML seed file. A missing file yields the
// built-in default seed so init works out of the box.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultSeed(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

func defaultSeed() *Seed {
	return &Seed{
		Products: []SeedProduct{
			{Name: "Milk 1L", Description: "Fresh milk bottle", Category: "Dairy", Price: "3.50", Stock: 50},
			{Name: "Bread Loaf", Description: "Whole grain loaf", Category: "Bakery", Price: "4.20", Stock: 25},
			{Name: "Eggs (12)", Description: "Dozen free-range eggs", Category: "Dairy", Price: "6.80", Stock: 30},
		},
		Accounts: []SeedAccount{
			{Username: "customer1", Password: "Password123!", Role: "customer",
				Name: "John Doe", Email: "john@example.com", Address: "123 Main St, Melbourne"},
			{Username: "staff1", Password: "Admin123!", Role: "staff", Name: "Admin User"},
		},
	}
}
