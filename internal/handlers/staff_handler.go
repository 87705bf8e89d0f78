package handlers

import (
	"net/http"

	"gescom/internal/middleware"
	"gescom/internal/services"

	"github.com/gin-gonic/gin"
)

// StaffHandler covers the HR surface: staff accounts, professions and
// leaves.
type StaffHandler struct {
	userService       services.UserService
	professionService services.ProfessionService
	leaveService      services.LeaveService
	activityService   services.ActivityService
}

func NewStaffHandler(
	userService services.UserService,
	professionService services.ProfessionService,
	leaveService services.LeaveService,
	activityService services.ActivityService,
) *StaffHandler {
	return &StaffHandler{
		userService:       userService,
		professionService: professionService,
		leaveService:      leaveService,
		activityService:   activityService,
	}
}

func (h *StaffHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	user, err := h.userService.Register(middleware.Session(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *StaffHandler) ListPersonnel(c *gin.Context) {
	personnel, err := h.userService.ListPersonnel(middleware.Session(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, personnel)
}

func (h *StaffHandler) GetUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	user, err := h.userService.Get(middleware.Session(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UserActivities returns the audit trail of one user, most recent first.
func (h *StaffHandler) UserActivities(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	if _, err := h.userService.Get(middleware.Session(c), id); err != nil {
		respondError(c, err)
		return
	}
	activities, err := h.activityService.ListForUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (h *StaffHandler) ListProfessions(c *gin.Context) {
	professions, err := h.professionService.List(middleware.Session(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, professions)
}

func (h *StaffHandler) CreateProfession(c *gin.Context) {
	var input services.ProfessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	profession, err := h.professionService.Create(middleware.Session(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profession)
}

func (h *StaffHandler) UpdateProfession(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	var input services.ProfessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	profession, err := h.professionService.Update(middleware.Session(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profession)
}

func (h *StaffHandler) DeleteProfession(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	if err := h.professionService.Delete(middleware.Session(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *StaffHandler) AddLeave(c *gin.Context) {
	var input services.LeaveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	conge, err := h.leaveService.Add(middleware.Session(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conge)
}

func (h *StaffHandler) CancelLeave(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	if err := h.leaveService.Cancel(middleware.Session(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *StaffHandler) UserLeaves(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	conges, err := h.leaveService.ListForUser(middleware.Session(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conges)
}
