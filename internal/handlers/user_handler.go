package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// UserHandler handles user-related requests.
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// CreateUserRequest represents the registration request payload.
type CreateUserRequest struct {
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password string  `json:"password" binding:"required,min=8,max=128"`
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
}

// UpdateMeRequest represents a user's update of their own account.
type UpdateMeRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8,max=128"`
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
}

// UpdateUserRequest represents a superuser's update of any account.
type UpdateUserRequest struct {
	UpdateMeRequest
	IsActive    *bool `json:"is_active"`
	IsSuperuser *bool `json:"is_superuser"`
}

func (r UpdateMeRequest) toUpdate() services.UserUpdate {
	return services.UserUpdate{Email: r.Email, Password: r.Password, FullName: r.FullName}
}

func (r UpdateUserRequest) toUpdate() services.UserUpdate {
	in := r.UpdateMeRequest.toUpdate()
	in.IsActive = r.IsActive
	in.IsSuperuser = r.IsSuperuser
	return in
}

// changedFields lists the fields present in an update, never their values.
func changedFields(in services.UserUpdate) map[string]interface{} {
	fields := map[string]interface{}{}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Password != nil {
		fields["password"] = "changed"
	}
	if in.FullName != nil {
		fields["full_name"] = *in.FullName
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if in.IsSuperuser != nil {
		fields["is_superuser"] = *in.IsSuperuser
	}
	return fields
}

// CreateUser handles self-registration.
// @Summary     Register a new user
// @Description Create an active, non-superuser account
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body CreateUserRequest true "User registration data"
// @Success     201 {object} models.User "User created"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.UserCreate{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), user.ID, "CREATE_USER", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, user)
}

// GetMe returns the authenticated user.
// @Summary     Get current user
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.User "Current user"
// @Failure     400 {object} ErrorResponse "Inactive user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe updates the authenticated user's own account.
// @Summary     Update current user
// @Description Update email, password or full name of the current user
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateMeRequest true "Fields to update"
// @Success     200 {object} models.User "Updated user"
// @Failure     400 {object} ErrorResponse "Inactive user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	in := req.toUpdate()
	updated, err := h.userService.UpdateUser(c.Request.Context(), user, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), user.ID, "UPDATE_USER", "user", user.ID, c.ClientIP(), changedFields(in))

	c.JSON(http.StatusOK, updated)
}

// ListUsers returns all users. Superuser only.
// @Summary     List users
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       skip  query int false "Items to skip (default 0)"
// @Param       limit query int false "Page size (1-200, default 100)"
// @Success     200 {object} pagination.PageResponse[models.User] "Paginated users"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a superuser"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	result, err := h.userService.ListUsers(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUser returns a user by id. Superuser only.
// @Summary     Get user by ID
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} models.User "User"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a superuser"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser updates any user, including activation and superuser flags.
// Superuser only.
// @Summary     Update user by ID
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "User ID"
// @Param       request body UpdateUserRequest true "Fields to update"
// @Success     200 {object} models.User "Updated user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a superuser"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Router      /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	in := req.toUpdate()
	user, err := h.userService.UpdateUserByID(c.Request.Context(), id, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), actorID, "UPDATE_USER", "user", id, c.ClientIP(), changedFields(in))

	c.JSON(http.StatusOK, user)
}
