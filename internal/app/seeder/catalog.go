// Package seeder loads a demo vehicle catalog from a YAML or JSON file into
// the cars table. It is an offline tool; the server never writes cars.
package seeder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// catalogNamespace derives stable ids for entries without an explicit id,
// so re-running the import updates rows instead of duplicating them.
var catalogNamespace = uuid.MustParse("6f1c2a0e-8d43-4a7b-9a55-2f0e6b3c9d11")

type catalogFile struct {
	Cars []carEntry `yaml:"cars" json:"cars"`
}

type carEntry struct {
	ID           string    `yaml:"id"             json:"id"`
	Brand        string    `yaml:"brand"          json:"brand"`
	Model        string    `yaml:"model"          json:"model"`
	Year         int       `yaml:"year"           json:"year"`
	Price        int64     `yaml:"price"          json:"price"`
	Mileage      int64     `yaml:"mileage"        json:"mileage"`
	Description  string    `yaml:"description"    json:"description"`
	Photos       []string  `yaml:"photos"         json:"photos"`
	Specs        specEntry `yaml:"specs"          json:"specs"`
	Status       string    `yaml:"status"         json:"status"`
	HideNewBadge bool      `yaml:"hide_new_badge" json:"hide_new_badge"`
}

type specEntry struct {
	Engine        string `yaml:"engine"         json:"engine"`
	Power         string `yaml:"power"          json:"power"`
	Transmission  string `yaml:"transmission"   json:"transmission"`
	Drive         string `yaml:"drive"          json:"drive"`
	Color         string `yaml:"color"          json:"color"`
	BodyType      string `yaml:"body_type"      json:"body_type"`
	Fuel          string `yaml:"fuel"           json:"fuel"`
	InteriorColor string `yaml:"interior_color" json:"interior_color"`
}

// LoadCatalog reads and validates a catalog file. The format follows the
// extension (.yaml, .yml or .json). All invalid entries are reported at once.
func LoadCatalog(path string) ([]domain.Car, error) {
	var file catalogFile
	if err := cleanenv.ReadConfig(path, &file); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if len(file.Cars) == 0 {
		return nil, fmt.Errorf("catalog %s: no cars", path)
	}
	return parseEntries(file.Cars)
}

func parseEntries(entries []carEntry) ([]domain.Car, error) {
	var (
		cars = make([]domain.Car, 0, len(entries))
		errs []error
		seen = make(map[uuid.UUID]int, len(entries))
	)

	for i, e := range entries {
		car, err := e.toCar()
		if err != nil {
			errs = append(errs, fmt.Errorf("cars[%d]: %w", i, err))
			continue
		}
		if prev, ok := seen[car.ID]; ok {
			errs = append(errs, fmt.Errorf("cars[%d]: duplicate of cars[%d] (set distinct ids)", i, prev))
			continue
		}
		seen[car.ID] = i
		cars = append(cars, car)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cars, nil
}

func (e carEntry) toCar() (domain.Car, error) {
	brand, model := strings.TrimSpace(e.Brand), strings.TrimSpace(e.Model)
	switch {
	case brand == "":
		return domain.Car{}, errors.New("brand is required")
	case model == "":
		return domain.Car{}, errors.New("model is required")
	case e.Year < 1900 || e.Year > 2100:
		return domain.Car{}, fmt.Errorf("year %d out of range", e.Year)
	case e.Price < 0:
		return domain.Car{}, errors.New("price must be >= 0")
	case e.Mileage < 0:
		return domain.Car{}, errors.New("mileage must be >= 0")
	}

	status := domain.CarStatusAvailable
	if e.Status != "" {
		status = domain.CarStatus(e.Status)
		if !status.IsValid() {
			return domain.Car{}, fmt.Errorf("unknown status %q", e.Status)
		}
	}

	id, err := e.id(brand, model)
	if err != nil {
		return domain.Car{}, err
	}

	return domain.Car{
		ID:           id,
		Brand:        brand,
		Model:        model,
		Year:         e.Year,
		Price:        e.Price,
		Mileage:      e.Mileage,
		Description:  strings.TrimSpace(e.Description),
		Photos:       e.Photos,
		Specs:        domain.CarSpecs(e.Specs),
		Status:       status,
		HideNewBadge: e.HideNewBadge,
	}, nil
}

func (e carEntry) id(brand, model string) (uuid.UUID, error) {
	if e.ID != "" {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid id %q", e.ID)
		}
		return id, nil
	}
	key := strings.ToLower(brand + "|" + model + "|" + strconv.Itoa(e.Year))
	return uuid.NewSHA1(catalogNamespace, []byte(key)), nil
}
