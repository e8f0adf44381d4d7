package repositories

import (
	"errors"
	"testing"

	"github.com/medtrack-dev/medtrack/internal/models"
)

func seedPatient(t *testing.T, store *PatientStore, id string, age int, height, weight float64, city string, userID *uint) {
	t.Helper()

	err := store.Create(&models.Patient{
		ID:     id,
		UserID: userID,
		Name:   "Patient " + id,
		City:   city,
		Age:    age,
		Gender: models.GenderOther,
		Height: height,
		Weight: weight,
	})

	if err != nil {
		t.Fatalf("failed to seed patient %s: %v", id, err)
	}
}

func TestPatientCreateComputesMetrics(t *testing.T) {
	store := NewPatientStore(newTestDB(t))

	seedPatient(t, store, "P001", 30, 1.75, 70, "Madrid", nil)

	patient, err := store.Get("P001")

	if err != nil {
		t.Fatalf("failed to fetch patient: %v", err)
	}

	if patient.BMI == nil || *patient.BMI != 22.86 {
		t.Errorf("expected bmi 22.86, got %v", patient.BMI)
	}

	if patient.Verdict == nil || *patient.Verdict != "Normal" {
		t.Errorf("expected verdict Normal, got %v", patient.Verdict)
	}
}

func TestPatientCreateDuplicate(t *testing.T) {
	store := NewPatientStore(newTestDB(t))

	seedPatient(t, store, "P001", 30, 1.75, 70, "Madrid", nil)

	err := store.Create(&models.Patient{
		ID:     "P001",
		Name:   "Impostor",
		City:   "Lisbon",
		Age:    50,
		Gender: models.GenderMale,
		Height: 1.6,
		Weight: 60,
	})

	if !errors.Is(err, ErrDuplicatePatient) {
		t.Fatalf("expected ErrDuplicatePatient, got %v", err)
	}

	patient, err := store.Get("P001")

	if err != nil {
		t.Fatalf("failed to fetch patient: %v", err)
	}

	if patient.Name != "Patient P001" || patient.City != "Madrid" {
		t.Error("a rejected duplicate create must not mutate the existing record")
	}
}

func TestPatientUpdateWeightRecomputesMetrics(t *testing.T) {
	store := NewPatientStore(newTestDB(t))

	seedPatient(t, store, "P001", 30, 1.75, 70, "Madrid", nil)

	weight := 100.0

	patient, err := store.Update("P001", PatientUpdate{Weight: &weight})

	if err != nil {
		t.Fatalf("failed to update patient: %v", err)
	}

	if patient.Height != 1.75 {
		t.Errorf("expected height to stay 1.75, got %v", patient.Height)
	}

	// 100 / 1.75^2 = 32.65, recomputed against the existing height.
	if patient.BMI == nil || *patient.BMI != 32.65 {
		t.Errorf("expected bmi 32.65, got %v", patient.BMI)
	}

	if patient.Verdict == nil || *patient.Verdict != "Obese" {
		t.Errorf("expected verdict Obese, got %v", patient.Verdict)
	}
}

func TestPatientUpdateNonMetricFieldKeepsDerived(t *testing.T) {
	store := NewPatientStore(newTestDB(t))

	seedPatient(t, store, "P001", 30, 1.75, 70, "Madrid", nil)

	city := "Porto"

	patient, err := store.Update("P001", PatientUpdate{City: &city})

	if err != nil {
		t.Fatalf("failed to update patient: %v", err)
	}

	if patient.City != "Porto" {
		t.Errorf("expected city Porto, got %q", patient.City)
	}

	if patient.BMI == nil || *patient.BMI != 22.86 {
		t.Errorf("expected bmi to stay 22.86, got %v", patient.BMI)
	}
}

func TestPatientUpdateNotFound(t *testing.T) {
	store := NewPatientStore(newTestDB(t))

	age := 40

	if _, err := store.Update("P404", PatientUpdate{Age: &age}); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestPatientDelete(t *testing.T) {
	store := NewPatientStore(newTestDB(t))

	seedPatient(t, store, "P001", 30, 1.75, 70, "Madrid", nil)

	if err := store.Delete("P001"); err != nil {
		t.Fatalf("failed to delete patient: %v", err)
	}

	if _, err := store.Get("P001"); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("expected ErrPatientNotFound after delete, got %v", err)
	}

	if err := store.Delete("P001"); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("expected ErrPatientNotFound for a second delete, got %v", err)
	}
}

func TestPatientGetByUserID(t *testing.T) {
	database := newTestDB(t)
	store := NewPatientStore(database)

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RolePatient}

	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	seedPatient(t, store, "P001", 30, 1.75, 70, "Madrid", &user.ID)
	seedPatient(t, store, "P002", 40, 1.6, 60, "Lisbon", nil)

	patient, err := store.GetByUserID(user.ID)

	if err != nil {
		t.Fatalf("failed to fetch patient by user id: %v", err)
	}

	if patient.ID != "P001" {
		t.Errorf("expected P001, got %s", patient.ID)
	}

	if _, err := store.GetByUserID(99); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("expected ErrPatientNotFound for an unlinked user, got %v", err)
	}
}

func TestPatientListSorting(t *testing.T) {
	store := NewPatientStore(newTestDB(t))

	seedPatient(t, store, "P001", 30, 1.75, 70, "Madrid", nil)
	seedPatient(t, store, "P002", 20, 1.6, 60, "Lisbon", nil)
	seedPatient(t, store, "P003", 40, 1.8, 90, "Porto", nil)

	patients, err := store.List("age", "desc")

	if err != nil {
		t.Fatalf("failed to list patients: %v", err)
	}

	if len(patients) != 3 {
		t.Fatalf("expected 3 patients, got %d", len(patients))
	}

	for i := 1; i < len(patients); i++ {
		if patients[i].Age > patients[i-1].Age {
			t.Fatalf("expected non-increasing ages, got %d before %d", patients[i-1].Age, patients[i].Age)
		}
	}

	// An invalid field or direction is silently ignored, never an error.
	for _, tc := range []struct{ sortBy, order string }{
		{"name", "desc"},
		{"age", "sideways"},
		{"", "desc"},
		{"age", ""},
	} {
		patients, err := store.List(tc.sortBy, tc.order)

		if err != nil {
			t.Fatalf("List(%q, %q) returned error: %v", tc.sortBy, tc.order, err)
		}

		if len(patients) != 3 {
			t.Fatalf("List(%q, %q) returned %d patients", tc.sortBy, tc.order, len(patients))
		}
	}
}

func TestPatientFilter(t *testing.T) {
	store := NewPatientStore(newTestDB(t))

	seedPatient(t, store, "P001", 30, 1.75, 70, "Madrid", nil)
	seedPatient(t, store, "P002", 45, 1.6, 95, "Madrid", nil)
	seedPatient(t, store, "P003", 25, 1.8, 78, "Lisbon", nil)

	minAge := 30
	maxWeight := 80.0

	patients, err := store.Filter(PatientFilter{MinAge: &minAge, MaxWeight: &maxWeight})

	if err != nil {
		t.Fatalf("failed to filter patients: %v", err)
	}

	if len(patients) != 1 || patients[0].ID != "P001" {
		t.Fatalf("expected only P001 to satisfy both bounds, got %v", patients)
	}

	// Bounds are inclusive.
	minAge = 25

	patients, err = store.Filter(PatientFilter{MinAge: &minAge})

	if err != nil {
		t.Fatalf("failed to filter patients: %v", err)
	}

	if len(patients) != 3 {
		t.Errorf("expected an inclusive min_age bound to match all 3, got %d", len(patients))
	}

	// No bounds means no restriction.
	patients, err = store.Filter(PatientFilter{})

	if err != nil {
		t.Fatalf("failed to filter patients: %v", err)
	}

	if len(patients) != 3 {
		t.Errorf("expected an empty filter to return all 3, got %d", len(patients))
	}
}

func TestPatientFilterCityCaseInsensitive(t *testing.T) {
	store := NewPatientStore(newTestDB(t))

	seedPatient(t, store, "P001", 30, 1.75, 70, "Madrid", nil)
	seedPatient(t, store, "P002", 25, 1.8, 78, "Lisbon", nil)

	patients, err := store.Filter(PatientFilter{City: "mAdRiD"})

	if err != nil {
		t.Fatalf("failed to filter patients: %v", err)
	}

	if len(patients) != 1 || patients[0].ID != "P001" {
		t.Fatalf("expected a case-insensitive city match for P001, got %v", patients)
	}
}
