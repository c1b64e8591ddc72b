package handlers

import (
	"time"

	"github.com/steelo13/WellnessWingman/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService interfaces.UserServiceInterface
	DiarySvc    interfaces.DiaryServiceInterface
	WaterSvc    interfaces.WaterServiceInterface
	GoalSvc     interfaces.GoalServiceInterface
	RecipeSvc   interfaces.RecipeServiceInterface
	PlannerSvc  interfaces.PlannerServiceInterface
	AISvc       interfaces.AIServiceInterface

	// Location is the calendar time zone all day bucketing runs in.
	Location *time.Location
}
