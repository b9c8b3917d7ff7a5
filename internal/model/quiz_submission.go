package model

import "time"

// QuizSubmission is a graded, one-time attempt. The unique index on
// (quiz_id, user_id) backs the one-submission-per-quiz rule.
// swagger:model QuizSubmission
type QuizSubmission struct {
	UUIDBase
	QuizID         uint         `gorm:"uniqueIndex:idx_quiz_user;type:bigint unsigned" json:"quizId"`
	Quiz           *Quiz        `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	UserID         uint         `gorm:"uniqueIndex:idx_quiz_user;type:bigint unsigned" json:"userId"`
	Score          int          `gorm:"not null" json:"score"`
	TotalQuestions int          `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers int          `gorm:"not null" json:"correctAnswers"`
	Percentage     int          `gorm:"not null" json:"percentage"`
	CompletedAt    time.Time    `json:"completedAt"`
	Answers        []QuizAnswer `gorm:"foreignKey:SubmissionID" json:"answers,omitempty"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

type QuizAnswer struct {
	UUIDBase
	SubmissionID   string `gorm:"index;type:varchar(36)" json:"submissionId"`
	QuestionIndex  int    `gorm:"not null" json:"questionIndex"`
	SelectedOption int    `gorm:"not null" json:"selectedOption"`
	IsCorrect      bool   `gorm:"default:false" json:"isCorrect"`
	PointsAwarded  int    `gorm:"default:0" json:"pointsAwarded"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
