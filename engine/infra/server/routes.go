package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janmasethu/sakhi/engine/chat"
	"github.com/janmasethu/sakhi/engine/onboarding"
	"github.com/janmasethu/sakhi/engine/user"
	"github.com/janmasethu/sakhi/pkg/logger"
)

// ChatService handles one conversational turn.
type ChatService interface {
	Handle(ctx context.Context, req chat.Request) (*chat.Response, error)
}

// UserService covers the profile updates the API exposes.
type UserService interface {
	UpdateRelation(ctx context.Context, userID, relation string) error
	UpdatePreferredLanguage(ctx context.Context, userID, language string) error
	SaveAnswers(ctx context.Context, userID string, answers []user.Answer) (int, error)
}

// OnboardingStore persists completed questionnaires.
type OnboardingStore interface {
	Create(ctx context.Context, userID string, targetUserID *string, relationshipType string, answers map[string]any) (*onboarding.ParentProfile, error)
	UpdateAnswers(ctx context.Context, parentProfileID string, answers map[string]any) error
}

type chatRequest struct {
	UserID      string `json:"user_id"`
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message" binding:"required"`
	Language    string `json:"language"`
}

type relationRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Relation string `json:"relation" binding:"required"`
}

type languageRequest struct {
	UserID            string `json:"user_id" binding:"required"`
	PreferredLanguage string `json:"preferred_language" binding:"required"`
}

type userAnswersRequest struct {
	UserID  string        `json:"user_id" binding:"required"`
	Answers []user.Answer `json:"answers" binding:"required,min=1"`
}

type onboardingStepRequest struct {
	ParentProfileID  string         `json:"parent_profile_id" binding:"required"`
	RelationshipType string         `json:"relationship_type" binding:"required"`
	CurrentStep      int            `json:"current_step"`
	AnswersJSON      map[string]any `json:"answers_json"`
}

type onboardingCompleteRequest struct {
	ParentProfileID  string         `json:"parent_profile_id"`
	UserID           string         `json:"user_id" binding:"required"`
	TargetUserID     *string        `json:"target_user_id"`
	RelationshipType string         `json:"relationship_type" binding:"required"`
	AnswersJSON      map[string]any `json:"answers_json"`
}

func registerRoutes(r *gin.Engine, s *Server) {
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(s.metrics))
	r.POST("/sakhi/chat", s.handleChat)
	r.POST("/onboarding/step", s.handleOnboardingStep)
	r.POST("/onboarding/complete", s.handleOnboardingComplete)
	r.POST("/user/relation", s.handleUserRelation)
	r.POST("/user/preferred-language", s.handleUserLanguage)
	r.POST("/user/answers", s.handleUserAnswers)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.version})
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := s.chat.Handle(c.Request.Context(), chat.Request{
		UserID:      req.UserID,
		PhoneNumber: req.PhoneNumber,
		Message:     req.Message,
		Language:    req.Language,
	})
	if err != nil {
		if errors.Is(err, chat.ErrMissingIdentity) {
			badRequest(c, err)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleOnboardingStep(c *gin.Context) {
	var req onboardingStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.AnswersJSON == nil {
		req.AnswersJSON = map[string]any{}
	}
	resp, err := onboarding.NextQuestion(onboarding.Request{
		ParentProfileID:  req.ParentProfileID,
		RelationshipType: req.RelationshipType,
		CurrentStep:      req.CurrentStep,
		Answers:          req.AnswersJSON,
	})
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleOnboardingComplete(c *gin.Context) {
	var req onboardingCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	if req.ParentProfileID != "" {
		if err := s.profiles.UpdateAnswers(ctx, req.ParentProfileID, req.AnswersJSON); err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "parent_profile_id": req.ParentProfileID})
		return
	}
	profile, err := s.profiles.Create(ctx, req.UserID, req.TargetUserID, req.RelationshipType, req.AnswersJSON)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "parent_profile_id": profile.ParentProfileID})
}

func (s *Server) handleUserRelation(c *gin.Context) {
	var req relationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.users.UpdateRelation(c.Request.Context(), req.UserID, req.Relation); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Server) handleUserLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.users.UpdatePreferredLanguage(c.Request.Context(), req.UserID, req.PreferredLanguage); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Server) handleUserAnswers(c *gin.Context) {
	var req userAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	for _, answer := range req.Answers {
		if err := answer.Validate(); err != nil {
			badRequest(c, err)
			return
		}
	}
	saved, err := s.users.SaveAnswers(c.Request.Context(), req.UserID, req.Answers)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "saved": saved})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func internalError(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Error("Request failed",
		"path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
