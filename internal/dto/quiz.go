package dto

import (
	"ai-quiz/internal/domain"
	"ai-quiz/internal/session"
)

// StartRequest is the body of POST /api/session/start
// @Description Player name for a new attempt
type StartRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// AnswerRequest is the body of POST /api/session/answer
type AnswerRequest struct {
	Option *int `json:"option" validate:"required,gte=0,lte=3"`
}

// ResetLeaderboardRequest is the body of DELETE /api/leaderboard
type ResetLeaderboardRequest struct {
	Confirm bool `json:"confirm"`
}

// QuestionView is the current question. The answer and explanation are only
// revealed once the question has been answered.
type QuestionView struct {
	ID                 int      `json:"id"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectAnswerIndex *int     `json:"correct_answer_index,omitempty"`
	Explanation        string   `json:"explanation,omitempty"`
}

// SessionResponse is the public snapshot of the live session.
type SessionResponse struct {
	State          string        `json:"state"`
	UserName       string        `json:"user_name,omitempty"`
	QuestionIndex  int           `json:"question_index"`
	QuestionCount  int           `json:"question_count"`
	Progress       float64       `json:"progress"`
	Question       *QuestionView `json:"question,omitempty"`
	SelectedOption *int          `json:"selected_option,omitempty"`
	IsAnswered     bool          `json:"is_answered"`
	Correct        *bool         `json:"correct,omitempty"`
	DisplayScore   int           `json:"display_score"`
	IsLastQuestion bool          `json:"is_last_question"`
	ErrorMessage   string        `json:"error_message,omitempty"`
	FinalScore     *int          `json:"final_score,omitempty"`
	Verdict        string        `json:"verdict,omitempty"`
	LastEntryID    string        `json:"last_entry_id,omitempty"`
}

// NewSessionResponse builds the snapshot for s.
func NewSessionResponse(s session.Session) SessionResponse {
	resp := SessionResponse{
		State:          s.State.String(),
		UserName:       s.UserName,
		QuestionIndex:  s.CurrentIndex,
		QuestionCount:  len(s.Questions),
		IsAnswered:     s.IsAnswered,
		DisplayScore:   s.DisplayScore(),
		IsLastQuestion: s.IsLastQuestion(),
		ErrorMessage:   s.ErrorMessage,
		LastEntryID:    s.LastEntryID,
	}
	if resp.QuestionCount == 0 {
		resp.QuestionCount = s.QuestionCount
	}

	if q, ok := s.CurrentQuestion(); ok {
		resp.Progress = s.Progress()
		view := &QuestionView{ID: q.ID, Text: q.Text, Options: q.Options}
		if s.IsAnswered {
			idx := q.CorrectAnswerIndex
			view.CorrectAnswerIndex = &idx
			view.Explanation = q.Explanation
			correct := s.AnsweredCorrectly()
			resp.Correct = &correct
		}
		resp.Question = view
		if s.SelectedOption != nil {
			selected := *s.SelectedOption
			resp.SelectedOption = &selected
		}
	}

	if s.State == session.StateResult {
		score := s.FinalScore
		resp.FinalScore = &score
		resp.Verdict = session.Verdict(score)
		resp.Progress = 100
	}
	return resp
}

// LeaderboardEntryResponse is one ranked leaderboard row.
type LeaderboardEntryResponse struct {
	Rank      int    `json:"rank"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Timestamp int64  `json:"timestamp"`
	Highlight bool   `json:"highlight,omitempty"`
}

// LeaderboardResponse lists entries best first.
type LeaderboardResponse struct {
	Entries []LeaderboardEntryResponse `json:"entries"`
}

// NewLeaderboardResponse ranks entries and marks the one with highlightID.
func NewLeaderboardResponse(entries []domain.LeaderboardEntry, highlightID string) LeaderboardResponse {
	resp := LeaderboardResponse{Entries: make([]LeaderboardEntryResponse, 0, len(entries))}
	for i, e := range entries {
		resp.Entries = append(resp.Entries, LeaderboardEntryResponse{
			Rank:      i + 1,
			ID:        e.ID,
			Name:      e.Name,
			Score:     e.Score,
			Timestamp: e.Timestamp,
			Highlight: highlightID != "" && e.ID == highlightID,
		})
	}
	return resp
}
