package controllers

import (
	"context"
	"fmt"

	"johan/johan/sources/psql/dao"
	"johan/johan/sources/psql/models"
)

type UserController struct {
	userDAO *dao.UserDAO
}

func NewUserController(userDAO *dao.UserDAO) *UserController {
	return &UserController{userDAO: userDAO}
}

func (c *UserController) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := c.userDAO.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found", id)
	}
	return user, nil
}

func (c *UserController) UpdateUser(ctx context.Context, id int, name, email *string) (*models.User, error) {
	user, err := c.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		user.Name = *name
	}
	if email != nil {
		user.Email = *email
	}
	if err := c.userDAO.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (c *UserController) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := c.userDAO.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}
