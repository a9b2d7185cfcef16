package users

import (
	"gorm.io/gorm"
)

var (
	userService    *UserService
	userController *UserController
)

func Setup(db *gorm.DB) {
	userService = &UserService{
		&UserRepository{db},
		&SecretKeyRepository{db},
	}
	userController = &UserController{
		userService,
	}
}

func GetUserService() *UserService {
	return userService
}

func GetUserController() *UserController {
	return userController
}
