package service

import (
	"context"
	"strings"

	"github.com/ukydev/tripsheet/internal/models"
)

// DriverInput is the writable part of a driver.
type DriverInput struct {
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone"`
	AltPhone  string `json:"alt_phone"`
	HomePhone string `json:"home_phone"`
	LicenseNo string `json:"license_no"`
	AadharNo  string `json:"aadhar_no"`
	Address   string `json:"address"`
	PhotoURL  string `json:"photo_url" validate:"omitempty,url"`
}

func (in DriverInput) apply(d *models.Driver) {
	d.Name = strings.TrimSpace(in.Name)
	d.Phone = in.Phone
	d.AltPhone = in.AltPhone
	d.HomePhone = in.HomePhone
	d.LicenseNo = in.LicenseNo
	d.AadharNo = in.AadharNo
	d.Address = in.Address
	d.PhotoURL = in.PhotoURL
}

func (s *Service) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	drivers, err := s.store.Drivers.FindDrivers(ctx)
	if err != nil {
		return nil, storeErr(err, "list", "Drivers")
	}
	return drivers, nil
}

func (s *Service) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	driver, err := s.store.Drivers.FindDriverByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "find", "Driver")
	}
	return driver, nil
}

func (s *Service) CreateDriver(ctx context.Context, in DriverInput) (*models.Driver, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	driver := models.Driver{ID: s.newID(), CreatedAt: s.now()}
	in.apply(&driver)
	if driver.Name == "" {
		return nil, invalid("Invalid input: name is required")
	}
	if err := s.store.Drivers.InsertDriver(ctx, driver); err != nil {
		return nil, storeErr(err, "insert", "Driver")
	}
	return &driver, nil
}

func (s *Service) UpdateDriver(ctx context.Context, id string, in DriverInput) (*models.Driver, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	driver, err := s.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(driver)
	if driver.Name == "" {
		return nil, invalid("Invalid input: name is required")
	}
	if err := s.store.Drivers.UpdateDriver(ctx, id, *driver); err != nil {
		return nil, storeErr(err, "update", "Driver")
	}
	return driver, nil
}

func (s *Service) DeleteDriver(ctx context.Context, id string) error {
	if err := s.store.Drivers.DeleteDriver(ctx, id); err != nil {
		return storeErr(err, "delete", "Driver")
	}
	return nil
}

func driverIndex(drivers []models.Driver) map[string]*models.Driver {
	idx := make(map[string]*models.Driver, len(drivers))
	for i := range drivers {
		idx[drivers[i].ID] = &drivers[i]
	}
	return idx
}
