package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-profile-api/internal/application/ports"
	"user-profile-api/internal/infrastructure/jwt"
	"user-profile-api/internal/interface/api/rest/dto/user"
	"user-profile-api/internal/interface/api/rest/middleware"
	"user-profile-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
	now         func() time.Time
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}

	auth := middleware.AuthMiddleware(jwtService)

	r.GET(RouteUsers, uc.SearchUsersHandler)
	r.POST(RouteUsers, auth, uc.CreateUserHandler)
	r.PUT(RouteUser, auth, uc.ReplaceUserHandler)
	r.PATCH(RouteUser, auth, uc.PatchUserHandler)
	r.DELETE(RouteUser, auth, uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) SearchUsersHandler(c *gin.Context) {
	var q user.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid query")
		return
	}
	from, to, err := validator.ValidateRange(q)
	if err != nil {
		respondError(c, uc.logger, "SearchByBirthDate", err)
		return
	}

	users, err := uc.userService.SearchByBirthDate(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, uc.logger, "SearchByBirthDate", err)
		return
	}

	respondData(c, http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req, err := validator.ValidateUser(req, uc.now())
	if err != nil {
		respondError(c, uc.logger, "CreateUser", err)
		return
	}

	uDomain, err := user.ToDomainUser(req)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	u, err := uc.userService.CreateUser(c.Request.Context(), uDomain)
	if err != nil {
		respondError(c, uc.logger, "CreateUser", err)
		return
	}

	respondData(c, http.StatusCreated, user.ToResponseUser(*u))
}

func (uc *UserController) ReplaceUserHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		respondMessage(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req, err := validator.ValidateUser(req, uc.now())
	if err != nil {
		respondError(c, uc.logger, "ReplaceUser", err)
		return
	}

	uDomain, err := user.ToDomainUser(req)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	u, err := uc.userService.ReplaceUser(c.Request.Context(), id, uDomain)
	if err != nil {
		respondError(c, uc.logger, "ReplaceUser", err)
		return
	}

	respondData(c, http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) PatchUserHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		respondMessage(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	var req user.PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req, err := validator.ValidatePatch(req, uc.now())
	if err != nil {
		respondError(c, uc.logger, "PatchUser", err)
		return
	}

	patch, err := user.ToDomainPatch(req)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	u, err := uc.userService.PatchUser(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, uc.logger, "PatchUser", err)
		return
	}

	respondData(c, http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		respondMessage(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	if err := uc.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, uc.logger, "DeleteUser", err)
		return
	}

	respondData(c, http.StatusOK, fmt.Sprintf("user %s is deleted", id))
}
