package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-blog/inkwell/internal/server/services"
)

type createStoryRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CoverImage  string   `json:"coverImage"`
	Published   *bool    `json:"published"`
}

type updateStoryRequest struct {
	Title       *string  `json:"title"`
	Content     *string  `json:"content"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	CoverImage  *string  `json:"coverImage"`
	Published   *bool    `json:"published"`
}

func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	var published *bool
	if q := r.URL.Query().Get("published"); q != "" {
		v, err := strconv.ParseBool(q)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid published filter")
			return
		}
		published = &v
	}

	stories, err := s.stories.List(r.Context(), published)
	if err != nil {
		s.writeError(r.Context(), w, err, errorText{internal: "Server error fetching stories"})
		return
	}
	writeJSON(w, http.StatusOK, stories)
}

func (s *Server) handleUserStories(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	stories, err := s.stories.UserStories(r.Context(), user.ID)
	if err != nil {
		s.writeError(r.Context(), w, err, errorText{internal: "Server error fetching user stories"})
		return
	}
	writeJSON(w, http.StatusOK, stories)
}

func (s *Server) handleGetStory(w http.ResponseWriter, r *http.Request) {
	story, err := s.stories.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err, errorText{
			notFound: "Story not found",
			internal: "Server error fetching story",
		})
		return
	}
	writeJSON(w, http.StatusOK, story)
}

func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req createStoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err, errorText{})
		return
	}

	story, err := s.stories.Create(r.Context(), user.ID, services.CreateStoryInput{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Tags:        req.Tags,
		CoverImage:  req.CoverImage,
		Published:   req.Published,
	})
	if err != nil {
		s.writeError(r.Context(), w, err, errorText{internal: "Server error creating story"})
		return
	}
	writeJSON(w, http.StatusCreated, story)
}

func (s *Server) handleUpdateStory(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req updateStoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err, errorText{})
		return
	}

	story, err := s.stories.Update(r.Context(), user.ID, chi.URLParam(r, "id"), services.UpdateStoryInput{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Tags:        req.Tags,
		CoverImage:  req.CoverImage,
		Published:   req.Published,
	})
	if err != nil {
		s.writeError(r.Context(), w, err, errorText{
			notFound:  "Story not found",
			forbidden: "Not authorized to update this story",
			internal:  "Server error updating story",
		})
		return
	}
	writeJSON(w, http.StatusOK, story)
}

func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.stories.Delete(r.Context(), user.ID, id); err != nil {
		s.writeError(r.Context(), w, err, errorText{
			notFound:  "Story not found",
			forbidden: "Not authorized to delete this story",
			internal:  "Server error deleting story",
		})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Story deleted successfully", ID: id})
}

func (s *Server) handleLikeStory(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	story, err := s.stories.ToggleLike(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err, errorText{
			notFound: "Story not found",
			internal: "Server error liking story",
		})
		return
	}
	writeJSON(w, http.StatusOK, story)
}
