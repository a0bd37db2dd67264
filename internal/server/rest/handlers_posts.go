package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-blog/inkwell/internal/server/models"
	"github.com/inkwell-blog/inkwell/internal/server/services"
)

var postErrors = errorText{notFound: "Post not found"}

type createPostRequest struct {
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	CoverImage  string              `json:"coverImage"`
	Files       []models.Attachment `json:"files"`
}

type updatePostRequest struct {
	Title       *string  `json:"title"`
	Content     *string  `json:"content"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	CoverImage  *string  `json:"coverImage"`
}

type commentRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err, postErrors)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err, postErrors)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err, postErrors)
		return
	}

	post, err := s.posts.Create(r.Context(), user.ID, services.CreatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Tags:        req.Tags,
		CoverImage:  req.CoverImage,
		Files:       req.Files,
	})
	if err != nil {
		s.writeError(r.Context(), w, err, postErrors)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err, postErrors)
		return
	}

	post, err := s.posts.Update(r.Context(), user.ID, chi.URLParam(r, "id"), services.UpdatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Tags:        req.Tags,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		s.writeError(r.Context(), w, err, postErrors)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.posts.Delete(r.Context(), user.ID, id); err != nil {
		s.writeError(r.Context(), w, err, postErrors)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	likes, err := s.posts.ToggleLike(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err, postErrors)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

func (s *Server) handleCommentPost(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err, postErrors)
		return
	}

	comments, err := s.posts.AddComment(r.Context(), user.ID, chi.URLParam(r, "id"), req.Text)
	if err != nil {
		s.writeError(r.Context(), w, err, postErrors)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
