package repositories

import (
	"gamenight/internal/database"
)

type Repository struct {
	User      UserRepository
	Contact   ContactRepository
	Game      GameRepository
	GameNight GameNightRepository
	Feedback  FeedbackRepository
	Category  CategoryRepository
	Tag       TagRepository
	Task      TaskRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:      NewUserRepository(db),
		Contact:   NewContactRepository(db),
		Game:      NewGameRepository(db),
		GameNight: NewGameNightRepository(db),
		Feedback:  NewFeedbackRepository(db),
		Category:  NewCategoryRepository(db),
		Tag:       NewTagRepository(db),
		Task:      NewTaskRepository(db),
	}
}
