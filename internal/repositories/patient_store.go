package repositories

import (
	"errors"

	"github.com/medtrack-dev/medtrack/internal/bmi"
	"github.com/medtrack-dev/medtrack/internal/models"
	"gorm.io/gorm"
)

// PatientUpdate carries a partial update; nil fields are left untouched.
type PatientUpdate struct {
	Name   *string
	City   *string
	Age    *int
	Gender *models.Gender
	Height *float64
	Weight *float64
}

// PatientFilter bounds are inclusive and conjoined; nil bounds impose no
// restriction. City is a case-insensitive exact match when non-empty.
type PatientFilter struct {
	MinAge    *int
	MaxAge    *int
	MinHeight *float64
	MaxHeight *float64
	MinWeight *float64
	MaxWeight *float64
	City      string
}

var patientSortFields = map[string]bool{
	"age":    true,
	"height": true,
	"weight": true,
}

var patientSortOrders = map[string]bool{
	"asc":  true,
	"desc": true,
}

type PatientStore struct {
	db *gorm.DB
}

func NewPatientStore(db *gorm.DB) *PatientStore {
	return &PatientStore{db: db}
}

// Create computes the derived metrics and persists the record. The primary
// key constraint is the authoritative duplicate guard; the pre-check only
// gives a friendlier error before the insert is attempted.
func (s *PatientStore) Create(patient *models.Patient) error {
	var existing models.Patient

	err := s.db.Where("id = ?", patient.ID).First(&existing).Error

	if err == nil {
		return ErrDuplicatePatient
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	patient.BMI, patient.Verdict = bmi.Compute(patient.Height, patient.Weight)

	if err := s.db.Create(patient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePatient
		}
		return err
	}

	return nil
}

func (s *PatientStore) Get(id string) (*models.Patient, error) {
	var patient models.Patient

	if err := s.db.Where("id = ?", id).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	return &patient, nil
}

// GetByUserID returns the patient record linked to a login account. At most
// one record per user exists.
func (s *PatientStore) GetByUserID(userID uint) (*models.Patient, error) {
	var patient models.Patient

	if err := s.db.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	return &patient, nil
}

// List returns all patients, ordered only when both sortBy and order are
// valid; any invalid combination is silently ignored and yields insertion
// order.
func (s *PatientStore) List(sortBy, order string) ([]models.Patient, error) {
	query := s.db

	if patientSortFields[sortBy] && patientSortOrders[order] {
		query = query.Order(sortBy + " " + order)
	}

	var patients []models.Patient

	if err := query.Find(&patients).Error; err != nil {
		return nil, err
	}

	return patients, nil
}

// Update merges the partial update into the stored record and persists it.
// The read-merge-write runs in a single transaction so that two concurrent
// updates cannot persist a bmi/verdict pair inconsistent with height/weight.
func (s *PatientStore) Update(id string, update PatientUpdate) (*models.Patient, error) {
	var patient models.Patient

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&patient).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return err
		}

		if update.Name != nil {
			patient.Name = *update.Name
		}

		if update.City != nil {
			patient.City = *update.City
		}

		if update.Age != nil {
			patient.Age = *update.Age
		}

		if update.Gender != nil {
			patient.Gender = *update.Gender
		}

		if update.Height != nil || update.Weight != nil {
			if update.Height != nil {
				patient.Height = *update.Height
			}

			if update.Weight != nil {
				patient.Weight = *update.Weight
			}

			patient.BMI, patient.Verdict = bmi.Compute(patient.Height, patient.Weight)
		}

		return tx.Save(&patient).Error
	})

	if err != nil {
		return nil, err
	}

	return &patient, nil
}

func (s *PatientStore) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Patient{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPatientNotFound
	}

	return nil
}

// Filter applies every supplied bound as an inclusive range predicate, then
// the city match.
func (s *PatientStore) Filter(filter PatientFilter) ([]models.Patient, error) {
	query := s.db

	if filter.MinAge != nil {
		query = query.Where("age >= ?", *filter.MinAge)
	}

	if filter.MaxAge != nil {
		query = query.Where("age <= ?", *filter.MaxAge)
	}

	if filter.MinHeight != nil {
		query = query.Where("height >= ?", *filter.MinHeight)
	}

	if filter.MaxHeight != nil {
		query = query.Where("height <= ?", *filter.MaxHeight)
	}

	if filter.MinWeight != nil {
		query = query.Where("weight >= ?", *filter.MinWeight)
	}

	if filter.MaxWeight != nil {
		query = query.Where("weight <= ?", *filter.MaxWeight)
	}

	if filter.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", filter.City)
	}

	var patients []models.Patient

	if err := query.Find(&patients).Error; err != nil {
		return nil, err
	}

	return patients, nil
}
