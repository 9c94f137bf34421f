package dto

import "github.com/Harish8848/bhasaguru-sub001/internal/model"

// QuestionDTO is the taker-facing view of a question. It is built by
// explicit construction so the correct-answer reference can never leak
// through a field copy.
type QuestionDTO struct {
	ID              uint     `json:"id"`
	Type            string   `json:"type"`
	Prompt          string   `json:"prompt"`
	AudioURL        *string  `json:"audio_url,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
	VideoURL        *string  `json:"video_url,omitempty"`
	Options         []string `json:"options,omitempty"`
	Points          float64  `json:"points"`
	OrderIndex      int      `json:"order_index"`
	Language        string   `json:"language,omitempty"`
	Module          string   `json:"module,omitempty"`
	Section         string   `json:"section,omitempty"`
	StandardSection string   `json:"standard_section,omitempty"`
	Difficulty      string   `json:"difficulty,omitempty"`
}

func NewQuestionDTO(q model.Question) QuestionDTO {
	return QuestionDTO{
		ID:              q.ID,
		Type:            q.Type,
		Prompt:          q.Prompt,
		AudioURL:        q.AudioURL,
		ImageURL:        q.ImageURL,
		VideoURL:        q.VideoURL,
		Options:         q.OptionList(),
		Points:          q.Points,
		OrderIndex:      q.OrderIndex,
		Language:        q.Language,
		Module:          q.Module,
		Section:         q.Section,
		StandardSection: q.StandardSection,
		Difficulty:      q.Difficulty,
	}
}

func NewQuestionDTOs(qs []model.Question) []QuestionDTO {
	dtos := make([]QuestionDTO, len(qs))
	for i, q := range qs {
		dtos[i] = NewQuestionDTO(q)
	}
	return dtos
}
