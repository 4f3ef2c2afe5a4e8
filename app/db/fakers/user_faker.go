package fakers

import (
	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/go-faker/faker/v4"
)

func UserFaker(password string) (*models.User, error) {
	hashed, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.User{
		FullName: faker.Name(),
		Email:    faker.Email(),
		Phone:    faker.Phonenumber(),
		Password: hashed,
		Role:     models.RoleCustomer,
	}, nil
}

func AdminFaker(email, password string) (*models.User, error) {
	admin, err := UserFaker(password)
	if err != nil {
		return nil, err
	}
	admin.FullName = "Quản trị viên"
	admin.Email = email
	admin.Role = models.RoleAdmin
	return admin, nil
}
