package accounts

import (
	"vibedocs/internal/util/logger"

	"gorm.io/gorm"
)

var (
	accountService    *AccountService
	accountController *AccountController
)

func Setup(db *gorm.DB) {
	accountService = &AccountService{
		&AccountRepository{db},
		logger.GetLogger(),
	}
	accountController = &AccountController{
		accountService,
	}
}

func GetAccountService() *AccountService {
	return accountService
}

func GetAccountController() *AccountController {
	return accountController
}
