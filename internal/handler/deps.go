package handler

import (
	"useracct/internal/app/account"
	"useracct/internal/configs"
)

type AppDeps struct {
	Config   *configs.AppConfig
	Accounts *account.Service
}
