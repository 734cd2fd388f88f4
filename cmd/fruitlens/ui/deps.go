package ui

import (
	"fruitlens/backend/app/classifier"
	"fruitlens/backend/app/models"
	"fruitlens/backend/app/services"
)

// Deps carries the in-process core the desktop client runs against.
type Deps struct {
	Accounts   *services.AccountService
	Images     *services.ImageService
	Classifier *classifier.Service
	Session    *services.Session
	WatchPaths []string
}

type errMsg struct{ err error }

type loggedInMsg struct{ user *models.User }

type registeredMsg struct{ username string }

type classifiedMsg struct {
	path        string
	label       string
	explanation string
	imageID     uint
}

type historyLoadedMsg struct{ records []models.ImageRecord }

type adminDataMsg struct {
	users  []models.User
	images []models.ImageRecord
}
