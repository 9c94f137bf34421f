package dto

// QuestionCreateDTO is used within TestCreateDTO for admin test ingestion.
type QuestionCreateDTO struct {
	Type            string   `json:"type" binding:"required"`
	Prompt          string   `json:"prompt" binding:"required"`
	Options         []string `json:"options"`
	CorrectAnswer   string   `json:"correct_answer"`
	Points          float64  `json:"points" binding:"required,gt=0"`
	OrderIndex      int      `json:"order_index" binding:"required,min=1"`
	AudioURL        *string  `json:"audio_url"`
	ImageURL        *string  `json:"image_url"`
	VideoURL        *string  `json:"video_url"`
	Language        string   `json:"language"`
	Module          string   `json:"module"`
	Section         string   `json:"section"`
	StandardSection string   `json:"standard_section"`
	Difficulty      string   `json:"difficulty"`
}

// TestCreateDTO lets admin tooling create a test with all its questions.
type TestCreateDTO struct {
	Title            string              `json:"title" binding:"required"`
	Type             string              `json:"type" binding:"required,oneof=practice formal certification"`
	DurationMinutes  int                 `json:"duration_minutes" binding:"omitempty,min=0"`
	PassingScore     float64             `json:"passing_score" binding:"min=0,max=100"`
	ShuffleQuestions bool                `json:"shuffle_questions"`
	ShuffleOptions   bool                `json:"shuffle_options"`
	AllowRetake      bool                `json:"allow_retake"`
	Questions        []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}
