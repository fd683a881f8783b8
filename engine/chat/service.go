// Package chat orchestrates one conversational turn: user resolution, inline
// profile onboarding, routing, retrieval, generation and persistence.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/janmasethu/sakhi/engine/conversation"
	"github.com/janmasethu/sakhi/engine/gateway"
	"github.com/janmasethu/sakhi/engine/knowledge"
	"github.com/janmasethu/sakhi/engine/llm"
	"github.com/janmasethu/sakhi/engine/user"
	"github.com/janmasethu/sakhi/pkg/logger"
)

// Mode tags a reply for the client UI.
type Mode string

const (
	ModeOnboarding         Mode = "onboarding"
	ModeOnboardingComplete Mode = "onboarding_complete"
	ModeGeneral            Mode = "general"
	ModeMedical            Mode = "medical"
)

// Request is one incoming user turn. Either UserID or PhoneNumber must be
// set; an unknown phone number starts profile onboarding.
type Request struct {
	UserID      string
	PhoneNumber string
	Message     string
	Language    string
}

// Response is the reply payload returned to the client.
type Response struct {
	Intent         string `json:"intent,omitempty"`
	Reply          string `json:"reply"`
	Mode           Mode   `json:"mode"`
	Language       string `json:"language,omitempty"`
	YouTubeLink    string `json:"youtube_link,omitempty"`
	InfographicURL string `json:"infographic_url,omitempty"`
	Route          string `json:"route,omitempty"`
	Image          string `json:"image,omitempty"`
}

// ErrMissingIdentity is returned when a request carries neither a user id nor
// a phone number.
var ErrMissingIdentity = errors.New("chat: user_id or phone_number is required")

// Router decides which generation path serves a message.
type Router interface {
	DecideRoute(ctx context.Context, text string) (gateway.Route, error)
}

// Retriever runs the layered knowledge search.
type Retriever interface {
	Query(ctx context.Context, query string, opts knowledge.QueryOptions) ([]knowledge.Match, error)
}

// Classifier assesses language and medical signal of a message.
type Classifier interface {
	Classify(ctx context.Context, message string) (llm.Classification, error)
}

// UserStore is the profile persistence the service needs.
type UserStore interface {
	GetByID(ctx context.Context, userID string) (*user.Profile, error)
	GetByPhone(ctx context.Context, phone string) (*user.Profile, error)
	CreatePartial(ctx context.Context, phone string) (*user.Profile, error)
	UpdateFields(ctx context.Context, userID string, fields map[string]string) error
}

// ConversationStore is the history persistence the service needs.
type ConversationStore interface {
	SaveUserMessage(ctx context.Context, userID, text, language string) error
	SaveAssistantMessage(ctx context.Context, userID, text, language string) error
	LastMessages(ctx context.Context, userID string, limit int) ([]conversation.Message, error)
}

// Config bounds one service instance.
type Config struct {
	HistoryLimit   int
	MaxReplyLength int
	Retrieval      knowledge.QueryOptions
}

func DefaultConfig() Config {
	return Config{
		HistoryLimit:   5,
		MaxReplyLength: MaxReplyLength,
		Retrieval:      knowledge.DefaultQueryOptions(),
	}
}

// Service wires the routing, retrieval and generation subsystems into the
// conversational flow.
type Service struct {
	cfg           Config
	router        Router
	retriever     Retriever
	classifier    Classifier
	slm           llm.Generator
	openai        llm.Generator
	users         UserStore
	conversations ConversationStore
}

func NewService(
	cfg Config,
	router Router,
	retriever Retriever,
	classifier Classifier,
	slm llm.Generator,
	openai llm.Generator,
	users UserStore,
	conversations ConversationStore,
) (*Service, error) {
	switch {
	case router == nil:
		return nil, errors.New("chat: router is required")
	case retriever == nil:
		return nil, errors.New("chat: retriever is required")
	case slm == nil:
		return nil, errors.New("chat: slm generator is required")
	case openai == nil:
		return nil, errors.New("chat: openai generator is required")
	case users == nil:
		return nil, errors.New("chat: user store is required")
	case conversations == nil:
		return nil, errors.New("chat: conversation store is required")
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 5
	}
	if cfg.MaxReplyLength <= 0 {
		cfg.MaxReplyLength = MaxReplyLength
	}
	if cfg.Retrieval.MatchCount <= 0 {
		cfg.Retrieval = knowledge.DefaultQueryOptions()
	}
	return &Service{
		cfg:           cfg,
		router:        router,
		retriever:     retriever,
		classifier:    classifier,
		slm:           slm,
		openai:        openai,
		users:         users,
		conversations: conversations,
	}, nil
}

const welcomeReply = "Welcome to Sakhi! I'm here to support you on your health journey. ❤️ \n Let's get started! What should I call you? (Please type just your name, e.g., Deepthi)"

const introReply = "Thank you! Your profile is all set.\n" +
	"Welcome to JanmaSethu. I know that the journey to parenthood is filled with ups and downs, endless questions, and moments where you just need someone to listen.\n\n" +
	"That is why I am here.\n\n" +
	"I am Sakhi, and I want you to think of me not just as a tool, but as your trusted companion. I am your judgment-free friend, here to hold your hand through it all—from pre-parenthood to pregnancy and beyond.\n\n" +
	"How can I help you today?\n\n" +
	"💛 I am a Safe Space: Pour your heart out, ask me the \"silly\" questions, or just vent. I am here to listen without judgment.\n\n" +
	"👩‍⚕️ I offer Doctor-Approved Trust: While I speak to you like a friend, my wisdom comes from validated medical professionals, so you can trust the guidance I give.\n\n" +
	"🧠 I bring Visual Clarity: Confused by medical terms? I use simple infographics to make complex topics clear and easy to understand.\n\n" +
	"My goal is to restore your faith and give you strength when you need it most. I am ready to listen whenever you are ready to talk.\n\n" +
	"Visit the Website below for more information"

// Handle processes one turn end to end.
func (s *Service) Handle(ctx context.Context, req Request) (*Response, error) {
	log := logger.FromContext(ctx)
	if req.Language == "" {
		req.Language = "en"
	}

	profile, resp, err := s.resolveUser(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		return resp, nil
	}

	if resp := s.advanceOnboarding(ctx, profile, req.Message); resp != nil {
		return resp, nil
	}

	if err := s.conversations.SaveUserMessage(ctx, profile.UserID, req.Message, req.Language); err != nil {
		return nil, fmt.Errorf("chat: save user message: %w", err)
	}

	route, err := s.router.DecideRoute(ctx, req.Message)
	if err != nil {
		return nil, fmt.Errorf("chat: decide route: %w", err)
	}

	language := req.Language
	if s.classifier != nil {
		classification, err := s.classifier.Classify(ctx, req.Message)
		if err != nil {
			log.Warn("Message classification failed, keeping request language", "error", err)
		} else if classification.Language != "" {
			language = classification.Language
		}
	}

	history, err := s.conversations.LastMessages(ctx, profile.UserID, s.cfg.HistoryLimit)
	if err != nil {
		log.Error("Loading conversation history failed", "error", err, "user_id", profile.UserID)
		history = nil
	}

	genReq := llm.Request{
		Message:  req.Message,
		Language: language,
		UserName: profile.DisplayName(),
		Relation: profile.Relation(),
		History:  toHistory(history),
	}

	switch route {
	case gateway.RouteSLMDirect:
		return s.respondDirect(ctx, profile, genReq, route)
	case gateway.RouteSLMRAG:
		return s.respondWithRetrieval(ctx, profile, genReq, route, s.slm)
	default:
		return s.respondWithRetrieval(ctx, profile, genReq, route, s.openai)
	}
}

func (s *Service) resolveUser(ctx context.Context, req Request) (*user.Profile, *Response, error) {
	var profile *user.Profile
	if req.UserID != "" {
		found, err := s.users.GetByID(ctx, req.UserID)
		if err != nil && !errors.Is(err, user.ErrNotFound) {
			return nil, nil, fmt.Errorf("chat: resolve user: %w", err)
		}
		profile = found
	} else if req.PhoneNumber != "" {
		found, err := s.users.GetByPhone(ctx, req.PhoneNumber)
		if err != nil && !errors.Is(err, user.ErrNotFound) {
			return nil, nil, fmt.Errorf("chat: resolve user: %w", err)
		}
		profile = found
	}
	if profile != nil {
		return profile, nil, nil
	}
	if req.PhoneNumber == "" {
		return nil, nil, ErrMissingIdentity
	}
	if _, err := s.users.CreatePartial(ctx, req.PhoneNumber); err != nil {
		return nil, nil, fmt.Errorf("chat: register user: %w", err)
	}
	return nil, &Response{Reply: welcomeReply, Mode: ModeOnboarding}, nil
}

// advanceOnboarding fills the first unset profile field with the incoming
// message and returns the next onboarding prompt, or nil when the profile is
// complete and normal flow should continue.
func (s *Service) advanceOnboarding(ctx context.Context, profile *user.Profile, message string) *Response {
	log := logger.FromContext(ctx)
	switch {
	case profile.NeedsName():
		if err := s.users.UpdateFields(ctx, profile.UserID, map[string]string{"name": message}); err != nil {
			log.Error("Storing onboarding name failed", "error", err)
		}
		return &Response{
			Reply: fmt.Sprintf("Nice to meet you, %s! Can you let me know your gender ? (Please reply with 'Male' or 'Female')", message),
			Mode:  ModeOnboarding,
		}
	case profile.NeedsGender():
		if err := s.users.UpdateFields(ctx, profile.UserID, map[string]string{"gender": message}); err != nil {
			log.Error("Storing onboarding gender failed", "error", err)
		}
		return &Response{
			Reply: "Got it. And finally, what's your location (City/Town)? (e.g., Vizag)",
			Mode:  ModeOnboarding,
		}
	case profile.NeedsLocation():
		if err := s.users.UpdateFields(ctx, profile.UserID, map[string]string{"location": message}); err != nil {
			log.Error("Storing onboarding location failed", "error", err)
		}
		return &Response{Reply: introReply, Mode: ModeOnboardingComplete, Image: "Sakhi_intro.png"}
	}
	return nil
}

func (s *Service) respondDirect(ctx context.Context, profile *user.Profile, genReq llm.Request, route gateway.Route) (*Response, error) {
	reply, err := s.slm.Generate(ctx, genReq)
	if err != nil {
		return nil, fmt.Errorf("chat: slm generation: %w", err)
	}
	reply = Truncate(reply, s.cfg.MaxReplyLength)
	if err := s.conversations.SaveAssistantMessage(ctx, profile.UserID, reply, genReq.Language); err != nil {
		return nil, fmt.Errorf("chat: save assistant message: %w", err)
	}
	return &Response{
		Intent:   gateway.IntentDescription(genReq.Message, route),
		Reply:    reply,
		Mode:     ModeGeneral,
		Language: genReq.Language,
		Route:    string(route),
	}, nil
}

func (s *Service) respondWithRetrieval(ctx context.Context, profile *user.Profile, genReq llm.Request, route gateway.Route, generator llm.Generator) (*Response, error) {
	matches, err := s.retriever.Query(ctx, genReq.Message, s.cfg.Retrieval)
	if err != nil {
		return nil, fmt.Errorf("chat: knowledge query: %w", err)
	}
	genReq.Context = knowledge.FormatContext(matches)

	reply, err := generator.Generate(ctx, genReq)
	if err != nil {
		return nil, fmt.Errorf("chat: %s generation: %w", route, err)
	}
	reply = Truncate(reply, s.cfg.MaxReplyLength)
	if err := s.conversations.SaveAssistantMessage(ctx, profile.UserID, reply, genReq.Language); err != nil {
		return nil, fmt.Errorf("chat: save assistant message: %w", err)
	}

	youtube, infographic := mediaLinks(matches)
	return &Response{
		Intent:         gateway.IntentDescription(genReq.Message, route),
		Reply:          reply,
		Mode:           ModeMedical,
		Language:       genReq.Language,
		YouTubeLink:    youtube,
		InfographicURL: infographic,
		Route:          string(route),
	}, nil
}

// mediaLinks pulls the first FAQ media references out of the merged matches.
func mediaLinks(matches []knowledge.Match) (youtube, infographic string) {
	for i := range matches {
		if matches[i].SourceType != knowledge.SourceFAQ {
			continue
		}
		if infographic == "" {
			infographic = matches[i].InfographicURL
		}
		if youtube == "" {
			youtube = matches[i].YouTubeLink
		}
		if youtube != "" || infographic != "" {
			break
		}
	}
	return youtube, infographic
}

func toHistory(messages []conversation.Message) []llm.Message {
	if len(messages) == 0 {
		return nil
	}
	history := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		role := llm.RoleUser
		if msg.MessageType == conversation.MessageSakhi {
			role = llm.RoleAssistant
		}
		history = append(history, llm.Message{Role: role, Content: msg.MessageText})
	}
	return history
}
