// Package rest exposes the HTTP/JSON interface: public reads, bearer-guarded
// writes, and the error taxonomy every handler translates into.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/inkwell-blog/inkwell/internal/logging"
	"github.com/inkwell-blog/inkwell/internal/server/models"
	"github.com/inkwell-blog/inkwell/internal/server/services"
)

// UserService is the slice of the user service the transport needs.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type PostService interface {
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, authorID string, in services.CreatePostInput) (*models.Post, error)
	Update(ctx context.Context, userID, id string, in services.UpdatePostInput) (*models.Post, error)
	Delete(ctx context.Context, userID, id string) error
	ToggleLike(ctx context.Context, userID, id string) ([]string, error)
	AddComment(ctx context.Context, userID, id, text string) ([]models.Comment, error)
}

type StoryService interface {
	List(ctx context.Context, published *bool) ([]*models.Story, error)
	UserStories(ctx context.Context, userID string) ([]*models.Story, error)
	Get(ctx context.Context, id string) (*models.Story, error)
	Create(ctx context.Context, authorID string, in services.CreateStoryInput) (*models.Story, error)
	Update(ctx context.Context, userID, id string, in services.UpdateStoryInput) (*models.Story, error)
	Delete(ctx context.Context, userID, id string) error
	ToggleLike(ctx context.Context, userID, id string) (*models.Story, error)
}

type UploadService interface {
	PresignedPutURL(ctx context.Context) (string, string, error)
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

type Server struct {
	address   string
	router    chi.Router
	logger    logging.Logger
	jwtSecret []byte

	users   UserService
	posts   PostService
	stories StoryService
	uploads UploadService
}

func NewServer(address string, l logging.Logger, secretKey string,
	us UserService, ps PostService, ss StoryService, up UploadService) *Server {

	s := &Server{
		address:   address,
		logger:    l.With("module", "rest_server"),
		jwtSecret: []byte(secretKey),
		users:     us,
		posts:     ps,
		stories:   ss,
		uploads:   up,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors)
	r.Use(s.requestLogger)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.With(s.requireAuth).Get("/me", s.handleMe)
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", s.handleListPosts)
		r.Get("/{id}", s.handleGetPost)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreatePost)
			r.Put("/{id}", s.handleUpdatePost)
			r.Delete("/{id}", s.handleDeletePost)
			r.Put("/{id}/like", s.handleLikePost)
			r.Post("/{id}/comment", s.handleCommentPost)
		})
	})

	r.Route("/api/stories", func(r chi.Router) {
		r.Get("/", s.handleListStories)
		// static route, takes precedence over /{id}
		r.With(s.requireAuth).Get("/user/stories", s.handleUserStories)
		r.Get("/{id}", s.handleGetStory)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreateStory)
			r.Put("/{id}", s.handleUpdateStory)
			r.Delete("/{id}", s.handleDeleteStory)
			r.Post("/{id}/like", s.handleLikeStory)
		})
	})

	r.Route("/api/uploads", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/presign", s.handlePresignUpload)
		r.Get("/presign/*", s.handlePresignDownload)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})

	s.router = r
	return s
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.router}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
