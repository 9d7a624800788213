package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// Domain-aware binding rules installed on gin's validator engine so request
// DTOs can reference them by tag.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("accountrole", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("earnabletype", func(fl validator.FieldLevel) bool {
		switch domain.ActivityType(fl.Field().String()) {
		case domain.ActivityRecycling, domain.ActivityLearning, domain.ActivityBonus:
			return true
		}
		return false
	})
}
