package routes

import (
	"net/http"

	"clinicbook/cmd/internal/service"
	"clinicbook/cmd/internal/utils/apierror"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(req *service.RegisterRequest) (*service.RegisterResponse, apierror.ErrorResponse)
	Login(req *service.LoginRequest) (*service.LoginResponse, apierror.ErrorResponse)
}

type DefaultUserRoute struct {
	UserService UserService
}

func NewUserDefault(userService UserService) *DefaultUserRoute {
	return &DefaultUserRoute{UserService: userService}
}

func (u *DefaultUserRoute) Register(c echo.Context) error {
	var req service.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	user, apierr := u.UserService.Register(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, user)
}

func (u *DefaultUserRoute) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := u.UserService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
