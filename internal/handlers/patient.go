package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medtrack-dev/medtrack/internal/models"
	"github.com/medtrack-dev/medtrack/internal/repositories"
	"github.com/medtrack-dev/medtrack/internal/utils"
)

type CreatePatientRequest struct {
	ID     string  `json:"id" binding:"required,max=10"`
	UserID *uint   `json:"user_id"`
	Name   string  `json:"name" binding:"required"`
	City   string  `json:"city" binding:"required"`
	Age    int     `json:"age" binding:"required,gt=0"`
	Gender string  `json:"gender" binding:"required,oneof=male female other"`
	Height float64 `json:"height" binding:"required,gt=0"`
	Weight float64 `json:"weight" binding:"required,gt=0"`
}

type UpdatePatientRequest struct {
	Name   *string  `json:"name"`
	City   *string  `json:"city"`
	Age    *int     `json:"age" binding:"omitempty,gt=0"`
	Gender *string  `json:"gender" binding:"omitempty,oneof=male female other"`
	Height *float64 `json:"height" binding:"omitempty,gt=0"`
	Weight *float64 `json:"weight" binding:"omitempty,gt=0"`
}

type FilterPatientsRequest struct {
	MinAge    *int     `form:"min_age"`
	MaxAge    *int     `form:"max_age"`
	MinHeight *float64 `form:"min_height"`
	MaxHeight *float64 `form:"max_height"`
	MinWeight *float64 `form:"min_weight"`
	MaxWeight *float64 `form:"max_weight"`
	City      string   `form:"city"`
}

type PatientHandler struct {
	patients *repositories.PatientStore
}

func NewPatientHandler(patients *repositories.PatientStore) *PatientHandler {
	return &PatientHandler{patients: patients}
}

// List returns all patients for admin and doctor callers, ordered when valid
// sort parameters are given. A patient-role caller only ever sees the record
// linked to their own account, or an empty list if none is linked.
func (h *PatientHandler) List(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if currentUser.Role == models.RolePatient {
		patient, err := h.patients.GetByUserID(currentUser.ID)

		if err != nil {
			if errors.Is(err, repositories.ErrPatientNotFound) {
				ctx.JSON(http.StatusOK, []models.Patient{})
				return
			}
			log.Printf("Failed to fetch patient: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx.JSON(http.StatusOK, []models.Patient{*patient})
		return
	}

	patients, err := h.patients.List(ctx.Query("sort_by"), ctx.Query("order"))

	if err != nil {
		log.Printf("Failed to list patients: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if patients == nil {
		patients = []models.Patient{}
	}

	ctx.JSON(http.StatusOK, patients)
}

func (h *PatientHandler) Get(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	patient, err := h.patients.Get(ctx.Param("id"))

	if err != nil {
		if errors.Is(err, repositories.ErrPatientNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		log.Printf("Failed to fetch patient: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if currentUser.Role == models.RolePatient {
		if patient.UserID == nil || *patient.UserID != currentUser.ID {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
	}

	ctx.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) Create(ctx *gin.Context) {
	var req CreatePatientRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patient := models.Patient{
		ID:     req.ID,
		UserID: req.UserID,
		Name:   req.Name,
		City:   req.City,
		Age:    req.Age,
		Gender: models.Gender(req.Gender),
		Height: req.Height,
		Weight: req.Weight,
	}

	if err := h.patients.Create(&patient); err != nil {
		if errors.Is(err, repositories.ErrDuplicatePatient) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Patient already exists"})
			return
		}
		log.Printf("Failed to create patient: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) Update(ctx *gin.Context) {
	var req UpdatePatientRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	update := repositories.PatientUpdate{
		Name:   req.Name,
		City:   req.City,
		Age:    req.Age,
		Height: req.Height,
		Weight: req.Weight,
	}

	if req.Gender != nil {
		gender := models.Gender(*req.Gender)
		update.Gender = &gender
	}

	patient, err := h.patients.Update(ctx.Param("id"), update)

	if err != nil {
		if errors.Is(err, repositories.ErrPatientNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		log.Printf("Failed to update patient: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Patient updated",
		"patient": patient,
	})
}

func (h *PatientHandler) Delete(ctx *gin.Context) {
	if err := h.patients.Delete(ctx.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrPatientNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		log.Printf("Failed to delete patient: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}

// Filter is open to every authenticated role and applies no ownership
// narrowing, unlike List and Get.
func (h *PatientHandler) Filter(ctx *gin.Context) {
	var req FilterPatientsRequest

	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patients, err := h.patients.Filter(repositories.PatientFilter{
		MinAge:    req.MinAge,
		MaxAge:    req.MaxAge,
		MinHeight: req.MinHeight,
		MaxHeight: req.MaxHeight,
		MinWeight: req.MinWeight,
		MaxWeight: req.MaxWeight,
		City:      req.City,
	})

	if err != nil {
		log.Printf("Failed to filter patients: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if patients == nil {
		patients = []models.Patient{}
	}

	ctx.JSON(http.StatusOK, patients)
}
