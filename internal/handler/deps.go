package handler

import (
	"duochat/internal/app/auth"
	"duochat/internal/app/message"
	"duochat/internal/configs"
)

// AppDeps holds the process-wide services shared by every handler.
type AppDeps struct {
	Config   *configs.AppConfig
	Auth     *auth.Service
	Messages *message.Service
}
