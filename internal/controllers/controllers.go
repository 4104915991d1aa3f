package controllers

import (
	"gamenight/internal/repositories"
	"gamenight/internal/services"

	contactController "gamenight/internal/controllers/contacts"
	feedbackController "gamenight/internal/controllers/feedback"
	gameController "gamenight/internal/controllers/games"
	gamenightController "gamenight/internal/controllers/gamenights"
	statsController "gamenight/internal/controllers/stats"
	tagController "gamenight/internal/controllers/tags"
)

type Controllers struct {
	GameNight gamenightController.GameNightControllerInterface
	Game      gameController.GameControllerInterface
	Contact   contactController.ContactControllerInterface
	Feedback  feedbackController.FeedbackControllerInterface
	Stats     statsController.StatsControllerInterface
	Tag       tagController.TagControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
) Controllers {
	return Controllers{
		GameNight: gamenightController.New(repos, services),
		Game:      gameController.New(repos, services),
		Contact:   contactController.New(repos, services),
		Feedback:  feedbackController.New(repos, services),
		Stats:     statsController.New(repos),
		Tag:       tagController.New(repos, services),
	}
}
